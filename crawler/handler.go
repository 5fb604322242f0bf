// Package crawler implements a bounded, breadth-first web crawler driven by
// user-registered handlers (side-effecting callbacks) and propagators
// (URL-producing callbacks).
package crawler

import (
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// EventKind tags a HandlerEvent as firing once per page or once per
// CSS-selector match.
type EventKind int

const (
	// OnPageEvent fires once per fetched page.
	OnPageEvent EventKind = iota
	// OnSelectorEvent fires once per element matching Selector.
	OnSelectorEvent
)

// HandlerEvent identifies when a handler or propagator runs. Two events are
// equal iff their Kind and Selector match exactly, so HandlerEvent is safe
// to use as a map key directly.
type HandlerEvent struct {
	Kind     EventKind
	Selector string
}

// OnPage builds the event that fires once per page.
func OnPage() HandlerEvent {
	return HandlerEvent{Kind: OnPageEvent}
}

// OnSelector builds the event that fires once per element matching sel.
func OnSelector(sel string) HandlerEvent {
	return HandlerEvent{Kind: OnSelectorEvent, Selector: sel}
}

// Page is the immutable record handed to handlers and propagators: the
// fetched URL, the decoded response body, the parsed document, and the
// depth at which the page was fetched (the seed is depth 0).
type Page struct {
	URL   *url.URL
	Text  string
	Doc   *goquery.Document
	Depth uint
}

// HandlerArgs is what a handler or propagator closure receives: the page
// being dispatched, the matched element (non-nil only for OnSelector
// events), and the HTTP client used for the crawl, shared read-only so a
// handler may issue its own requests.
type HandlerArgs struct {
	Page    *Page
	Element *goquery.Selection
	Client  *http.Client
}

// Handler is a side-effecting callback invoked for a page or a matched
// element. It may capture and mutate its own state; dispatch is always
// serialized on the engine's single driver goroutine, so no synchronization
// is required for that captured state.
type Handler func(args *HandlerArgs)

// Propagator is a URL-producing callback. Its return value is passed
// through the whitelist/blacklist filters and the visited set by the
// engine; a propagator never decides on its own whether a URL gets
// crawled.
type Propagator func(args *HandlerArgs) []*url.URL

// registry holds the two parallel maps of callbacks, keyed by HandlerEvent,
// preserving insertion order within a key.
type registry struct {
	handlers    map[HandlerEvent][]Handler
	propagators map[HandlerEvent][]Propagator
}

func newRegistry() *registry {
	return &registry{
		handlers:    make(map[HandlerEvent][]Handler),
		propagators: make(map[HandlerEvent][]Propagator),
	}
}

func (r *registry) addHandler(ev HandlerEvent, f Handler) {
	r.handlers[ev] = append(r.handlers[ev], f)
}

func (r *registry) addPropagator(ev HandlerEvent, f Propagator) {
	r.propagators[ev] = append(r.propagators[ev], f)
}
