package httpx

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dustin/go-humanize"
)

// Clock is swapped for a clock.Mock in tests so fetch-timing log lines are
// deterministic. Real callers get clock.New(), the wall clock.
type Clock = clock.Clock

// NewClock returns the real wall clock.
func NewClock() Clock {
	return clock.New()
}

// DescribeFetch formats a one-line summary of a completed fetch for debug
// logging: the URL, how long it took, and how many bytes came back.
func DescribeFetch(target string, elapsed time.Duration, bytes int) string {
	return fmt.Sprintf("%s (%s, %s)", target, elapsed.Round(time.Millisecond), humanize.Bytes(uint64(bytes)))
}
