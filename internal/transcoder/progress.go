package transcoder

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Heuristic used when the media duration is unknown: every recognized
// progress marker bumps the reported fraction by a fixed step, capped
// below 1.0 so full completion is only ever reported after a clean exit.
const (
	heuristicStep = 0.01
	heuristicCap  = 0.99
)

// scanProgress consumes ffmpeg's -progress output line by line and emits a
// completion fraction for every recognized elapsed-time marker.
//
// Markers look like "out_time_ms=5000000"; despite the name the value is
// in microseconds. With a known duration the fraction is elapsed/duration
// clamped to [0, 1]; with duration <= 0 the capped heuristic applies.
// Malformed markers and unrecognized keys are skipped so a noisy line can
// never abort an encode. The scan ends at "progress=end" or EOF.
func scanProgress(r io.Reader, duration float64, emit func(float64)) {
	var last float64

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if rest, ok := strings.CutPrefix(line, "out_time_ms="); ok {
			us, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				continue
			}
			last = nextFraction(last, float64(us)/1e6, duration)
			if emit != nil {
				emit(last)
			}
			continue
		}

		if strings.HasPrefix(line, "progress=") && strings.HasSuffix(line, "end") {
			break
		}
	}
}

// nextFraction computes the fraction to report after a marker at elapsed
// seconds, given the previously reported fraction.
func nextFraction(prev, elapsed, duration float64) float64 {
	if duration > 0 {
		f := elapsed / duration
		if f < 0 {
			return 0
		}
		if f > 1 {
			return 1
		}
		return f
	}

	f := prev + heuristicStep
	if f > heuristicCap {
		return heuristicCap
	}
	return f
}
