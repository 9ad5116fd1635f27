package transcoder

import (
	"strings"
	"testing"
)

func TestTailBufferShortWrites(t *testing.T) {
	buf := newTailBuffer(10)

	if _, err := buf.Write([]byte("hello")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "hello" {
		t.Errorf("Expected %q, got %q", "hello", buf.String())
	}
}

func TestTailBufferKeepsTail(t *testing.T) {
	buf := newTailBuffer(10)

	for _, chunk := range []string{"abcdefg", "hijklmn", "opq"} {
		if _, err := buf.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	if buf.String() != "hijklmnopq" {
		t.Errorf("Expected last 10 bytes %q, got %q", "hijklmnopq", buf.String())
	}
}

func TestTailBufferOversizeWrite(t *testing.T) {
	buf := newTailBuffer(10)

	n, err := buf.Write([]byte(strings.Repeat("x", 25) + "the-end-yz"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 35 {
		t.Errorf("Expected Write to report 35 bytes, got %d", n)
	}
	if buf.String() != "the-end-yz" {
		t.Errorf("Expected %q, got %q", "the-end-yz", buf.String())
	}
}

func TestExitErrorMessage(t *testing.T) {
	withTail := &ExitError{Code: 1, Tail: "unsupported codec"}
	if withTail.Error() != "unsupported codec" {
		t.Errorf("Expected tail as message, got %q", withTail.Error())
	}

	noTail := &ExitError{Code: 187}
	if noTail.Error() != "ffmpeg exit code 187" {
		t.Errorf("Expected exit-code message, got %q", noTail.Error())
	}
}
