package fuzzer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFuzzer(t *testing.T, b *Builder) *Fuzzer {
	t.Helper()
	f, err := b.Build()
	require.NoError(t, err)
	return f
}

func TestFuzzGetDispatchesEveryReachableURL(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler.HandleFunc("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	var mu sync.Mutex
	statuses := make(map[int]int)
	f := testFuzzer(t, NewBuilder().
		Workers(2).
		AddHandler(func(args FuzzHandlerArgs) {
			mu.Lock()
			statuses[args.Response.StatusCode]++
			mu.Unlock()
		}))

	errs, err := f.FuzzGet(FromSlice([]string{
		server.URL + "/ok",
		server.URL + "/missing",
		server.URL + "/teapot",
		"http://127.0.0.1:9/unreachable",
	}))
	require.NoError(t, err)

	// Three requests complete; statuses >= 400 are not errors, they flow to
	// the handler. The refused connection is the single collected error.
	assert.Len(t, errs, 1)
	assert.Equal(t, 1, statuses[http.StatusOK])
	assert.Equal(t, 1, statuses[http.StatusNotFound])
	assert.Equal(t, 1, statuses[http.StatusTeapot])
}

func TestFuzzGetSkipsUnparsableURLs(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	calls := 0
	f := testFuzzer(t, NewBuilder().
		Workers(1).
		AddHandler(func(args FuzzHandlerArgs) { calls++ }))

	errs, err := f.FuzzGet(FromSlice([]string{"http://bad url\x7f", server.URL + "/"}))
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 1, calls)
}

func TestFuzzPostSendsBodiesVerbatim(t *testing.T) {
	var mu sync.Mutex
	received := make(map[string]string)
	handler := http.NewServeMux()
	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		received[r.URL.Path] = string(body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	calls := 0
	f := testFuzzer(t, NewBuilder().
		Workers(1).
		AddHandler(func(args FuzzHandlerArgs) {
			calls++
			assert.Equal(t, http.MethodPost, args.Response.Request.Method)
		}))

	urls := FromSlice([]string{server.URL + "/first", server.URL + "/second"})
	bodies := FromSlice([]string{`{"probe":1}`, "param=value"})
	errs, err := f.FuzzPost(Zip(urls, bodies))
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 2, calls)
	assert.Equal(t, `{"probe":1}`, received["/first"])
	assert.Equal(t, "param=value", received["/second"])
}

func TestFuzzGetEmptySourceTerminates(t *testing.T) {
	f := testFuzzer(t, NewBuilder().AddHandler(func(args FuzzHandlerArgs) {
		t.Error("handler invoked with no input")
	}))
	errs, err := f.FuzzGet(FromSlice(nil))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestFuzzerBuilderRejectsZeroWorkers(t *testing.T) {
	_, err := NewBuilder().Workers(0).Build()
	require.Error(t, err)
}
