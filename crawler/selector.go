package crawler

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/PuerkitoBio/goquery"
)

// selectorCache parses CSS selector strings at dispatch time, memoizing the
// compiled form for the lifetime of one Crawl call so a deep crawl does not
// recompile the same selector once per page.
type selectorCache struct {
	compiled map[string]cascadia.Selector
}

func newSelectorCache() *selectorCache {
	return &selectorCache{compiled: make(map[string]cascadia.Selector)}
}

// compile returns the cascadia.Selector for sel, compiling and caching it on
// first use. An invalid selector is a programmer error, not a network
// failure, and is reported back to the caller so the crawl can abort fast
// naming the offending selector.
func (c *selectorCache) compile(sel string) (cascadia.Selector, error) {
	if s, ok := c.compiled[sel]; ok {
		return s, nil
	}
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", sel, err)
	}
	c.compiled[sel] = s
	return s, nil
}

// find selects every element in doc matching sel, in document order.
func (c *selectorCache) find(doc *goquery.Document, sel string) (*goquery.Selection, error) {
	matcher, err := c.compile(sel)
	if err != nil {
		return nil, err
	}
	return doc.FindMatcher(matcher), nil
}
