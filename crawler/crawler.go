package crawler

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/garlic0x1/gar-crawl/internal/httpx"
)

// Crawler is the immutable, built engine. NewBuilder() / FromEnv() produce
// the Builder that assembles one; Crawl owns the mutable traversal state
// (queue, visited set, selector cache) for the duration of a single call
// and discards it on return, so one Crawler is safe to reuse across
// sequential crawls.
type Crawler struct {
	cfg      config
	registry *registry
	client   *http.Client
	clock    httpx.Clock
	logger   *log.Logger
}

// workItem is a (URL, depth) pair on the FIFO work queue.
type workItem struct {
	url   *url.URL
	depth uint
}

// Crawl drives the bounded producer/consumer loop described in the engine
// design: fill in-flight fetch tasks up to the worker bound, drain one
// completion at a time, dispatch handlers then (depth permitting)
// propagators, and enqueue whatever the propagators yield that passes the
// filters and the visited set. It returns the per-URL fetch errors
// collected along the way; it returns a non-nil error only for the two
// irrecoverable failures: a seed that fails to parse, or an invalid CSS
// selector encountered at dispatch time. Handler and propagator panics are
// not recovered; they propagate out and abort the crawl.
func (c *Crawler) Crawl(seed string) ([]error, error) {
	root, err := url.Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("parsing seed %q: %w", seed, err)
	}

	var fetchErrors []error
	visited := newVisitedSet()
	visited.markVisited(root)
	selectors := newSelectorCache()

	queue := []workItem{{url: root, depth: 0}}
	completion := make(chan fetchResult, c.cfg.workers)
	inFlight := 0

	for len(queue) > 0 || inFlight > 0 {
		for inFlight < c.cfg.workers && len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]
			inFlight++
			go fetchTask(item.url, item.depth, c.client, c.cfg.userAgent, c.clock, c.logger, completion)
		}

		res := <-completion
		inFlight--

		if res.err != nil {
			c.logger.Println(res.err)
			fetchErrors = append(fetchErrors, res.err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.body))
		if err != nil {
			// The parser is lenient; a failure here means the body wasn't
			// readable as a document at all, which we treat like any other
			// fetch failure rather than aborting the whole crawl.
			fetchErrors = append(fetchErrors, fmt.Errorf("parsing %s: %w", res.url, err))
			continue
		}

		page := &Page{URL: res.url, Text: res.body, Doc: doc, Depth: res.depth}

		if err := c.dispatchHandlers(page, selectors); err != nil {
			return fetchErrors, err
		}

		if page.Depth < c.cfg.maxDepth {
			found, err := c.dispatchPropagators(page, selectors)
			if err != nil {
				return fetchErrors, err
			}
			for _, u := range found {
				if !isAllowed(u, c.cfg.whitelist, c.cfg.blacklist) {
					continue
				}
				if !c.cfg.revisit && !visited.markVisited(u) {
					continue
				}
				queue = append(queue, workItem{url: u, depth: page.Depth + 1})
			}
		}
	}

	return fetchErrors, nil
}

// dispatchHandlers runs every registered side-effecting handler against
// page: all OnPage handlers, then all OnSelector handlers in whatever
// (consistent) order the registry's keys are visited, element matches
// walked in document order.
func (c *Crawler) dispatchHandlers(page *Page, selectors *selectorCache) error {
	for _, ev := range sortedEvents(c.registry.handlers) {
		handlers := c.registry.handlers[ev]
		switch ev.Kind {
		case OnPageEvent:
			for _, h := range handlers {
				h(&HandlerArgs{Page: page, Client: c.client})
			}
		case OnSelectorEvent:
			sel, err := selectors.find(page.Doc, ev.Selector)
			if err != nil {
				return err
			}
			sel.Each(func(_ int, el *goquery.Selection) {
				for _, h := range handlers {
					h(&HandlerArgs{Page: page, Element: el, Client: c.client})
				}
			})
		}
	}
	return nil
}

// dispatchPropagators runs every registered propagator against page and
// collects whatever URLs they yield, in the same traversal order as
// dispatchHandlers. Filtering, visited-set gating and depth-cap enforcement
// all happen in the caller (Crawl), never here.
func (c *Crawler) dispatchPropagators(page *Page, selectors *selectorCache) ([]*url.URL, error) {
	var found []*url.URL
	for _, ev := range sortedPropagatorEvents(c.registry.propagators) {
		propagators := c.registry.propagators[ev]
		switch ev.Kind {
		case OnPageEvent:
			for _, p := range propagators {
				found = append(found, p(&HandlerArgs{Page: page, Client: c.client})...)
			}
		case OnSelectorEvent:
			sel, err := selectors.find(page.Doc, ev.Selector)
			if err != nil {
				return nil, err
			}
			sel.Each(func(_ int, el *goquery.Selection) {
				for _, p := range propagators {
					found = append(found, p(&HandlerArgs{Page: page, Element: el, Client: c.client})...)
				}
			})
		}
	}
	return found, nil
}
