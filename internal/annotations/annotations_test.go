package annotations

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGetMissingReturnsEmptyObject(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	data, err := store.Get("never-written")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty object, got %q", string(data))
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	doc := json.RawMessage(`{"videoId":"clip1","notes":[{"time":1.5,"text":"intro"}]}`)
	if err := store.Put("clip1", doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := store.Get("clip1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("stored document is not valid JSON: %v", err)
	}
	if decoded["videoId"] != "clip1" {
		t.Errorf("Expected videoId=clip1, got %v", decoded["videoId"])
	}
}

func TestPutOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := store.Put("v", json.RawMessage(`{"rev":1}`)); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := store.Put("v", json.RawMessage(`{"rev":2}`)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	data, err := store.Get("v")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["rev"] != 2 {
		t.Errorf("Expected rev=2 after overwrite, got %d", decoded["rev"])
	}
}

func TestInvalidVideoID(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []string{"", "../escape", "a/b", "a b", "a\x00b"}
	for _, id := range tests {
		if _, err := store.Get(id); !errors.Is(err, ErrInvalidVideoID) {
			t.Errorf("Get(%q): expected ErrInvalidVideoID, got %v", id, err)
		}
		if err := store.Put(id, json.RawMessage(`{}`)); !errors.Is(err, ErrInvalidVideoID) {
			t.Errorf("Put(%q): expected ErrInvalidVideoID, got %v", id, err)
		}
	}
}

func TestPutRejectsInvalidJSON(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := store.Put("v", json.RawMessage(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON document")
	}
}
