package fuzzer

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// fuzzResult is the sum type a fuzz fetch task always produces exactly
// once, mirroring crawler's fetchResult guarantee.
type fuzzResult struct {
	url  *url.URL
	resp *http.Response
	err  error
}

// fetchGet issues a single GET and always sends exactly one fuzzResult on
// out.
func fetchGet(u *url.URL, client *http.Client, userAgent string, out chan<- fuzzResult) {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		out <- fuzzResult{err: fmt.Errorf("building request for %s: %w", u, err)}
		return
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		out <- fuzzResult{err: fmt.Errorf("requesting %s: %w", u, err)}
		return
	}
	out <- fuzzResult{url: u, resp: resp}
}

// fetchPost issues a single POST with body and always sends exactly one
// fuzzResult on out. The body is passed through verbatim; setting a
// Content-Type is left to the caller's handler chain.
func fetchPost(u *url.URL, body string, client *http.Client, userAgent string, out chan<- fuzzResult) {
	req, err := http.NewRequest(http.MethodPost, u.String(), strings.NewReader(body))
	if err != nil {
		out <- fuzzResult{err: fmt.Errorf("building request for %s: %w", u, err)}
		return
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		out <- fuzzResult{err: fmt.Errorf("requesting %s: %w", u, err)}
		return
	}
	out <- fuzzResult{url: u, resp: resp}
}
