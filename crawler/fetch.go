package crawler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"golang.org/x/net/html/charset"

	"github.com/garlic0x1/gar-crawl/internal/httpx"
)

// fetchResult is the sum type a fetch task always produces exactly once:
// either a successful page body or an error. This single-message guarantee
// is what lets the engine's in_flight counter stay accurate without any
// other synchronization.
type fetchResult struct {
	url   *url.URL
	body  string
	depth uint
	err   error
}

// fetchTask performs one async HTTP GET and always sends exactly one
// fetchResult on out, even on every failure path.
func fetchTask(u *url.URL, depth uint, client *http.Client, userAgent string, clk httpx.Clock, logger *log.Logger, out chan<- fetchResult) {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		out <- fetchResult{err: fmt.Errorf("fetching %s: %w", u, err)}
		return
	}
	req.Header.Set("User-Agent", userAgent)

	start := clk.Now()
	resp, err := client.Do(req)
	elapsed := clk.Now().Sub(start)
	if err != nil {
		out <- fetchResult{err: fmt.Errorf("fetching %s: %w", u, err)}
		return
	}
	defer resp.Body.Close()

	// Decode using the charset the response declares (Content-Type header,
	// BOM or <meta> tag). Without a declaration, the body is passed through
	// unchanged when its first 1024 bytes hold valid non-ASCII UTF-8 and is
	// decoded as windows-1252 otherwise; invalid UTF-8 sequences are not
	// replaced.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		out <- fetchResult{err: fmt.Errorf("decoding body of %s: %w", u, err)}
		return
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		out <- fetchResult{err: fmt.Errorf("reading body of %s: %w", u, err)}
		return
	}

	if logger != nil {
		logger.Println(httpx.DescribeFetch(u.String(), elapsed, len(body)))
	}

	out <- fetchResult{url: u, body: string(body), depth: depth}
}
