package fuzzer

import (
	"net/http"
	"net/url"
)

// FuzzHandlerArgs is what a fuzzer handler receives: the requested URL, the
// raw HTTP response (status, headers, body all available to the user), and
// the shared HTTP client. Unlike the crawler, the fuzzer hands over the
// response object itself rather than a parsed page, since its purpose is
// probing, not scraping.
type FuzzHandlerArgs struct {
	URL      *url.URL
	Response *http.Response
	Client   *http.Client
}

// FuzzHandler is a side-effecting callback invoked once per completed
// request.
type FuzzHandler func(args FuzzHandlerArgs)
