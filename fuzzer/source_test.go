package fuzzer

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(s URLSource) []string {
	var out []string
	for {
		v, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestFromSlice(t *testing.T) {
	s := FromSlice([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, drain(s))
	_, ok := s.Next()
	assert.False(t, ok, "exhausted source must keep reporting exhaustion")
}

func TestFromScanner(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("http://a/\nhttp://b/\n"))
	s := FromScanner(scanner)
	assert.Equal(t, []string{"http://a/", "http://b/"}, drain(s))
}

func TestFromChannel(t *testing.T) {
	ch := make(chan string, 2)
	ch <- "http://a/"
	ch <- "http://b/"
	close(ch)
	assert.Equal(t, []string{"http://a/", "http://b/"}, drain(FromChannel(ch)))
}

func TestZipStopsAtShorterSource(t *testing.T) {
	z := Zip(FromSlice([]string{"u1", "u2", "u3"}), FromSlice([]string{"b1", "b2"}))
	var pairs [][2]string
	for {
		u, b, ok := z.Next()
		if !ok {
			break
		}
		pairs = append(pairs, [2]string{u, b})
	}
	assert.Equal(t, [][2]string{{"u1", "b1"}, {"u2", "b2"}}, pairs)
}
