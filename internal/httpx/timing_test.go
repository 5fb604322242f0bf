package httpx

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestDescribeFetch(t *testing.T) {
	out := DescribeFetch("http://example.com/", 1500*time.Millisecond, 2048)
	assert.Equal(t, "http://example.com/ (1.5s, 2.0 kB)", out)
}

func TestDescribeFetchWithMockClock(t *testing.T) {
	mock := clock.NewMock()
	start := mock.Now()
	mock.Add(250 * time.Millisecond)
	elapsed := mock.Now().Sub(start)
	out := DescribeFetch("http://example.com/page", elapsed, 10)
	assert.Equal(t, "http://example.com/page (250ms, 10 B)", out)
}
