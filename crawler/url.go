package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// AbsoluteURL resolves href against base. If href already parses as an
// absolute URL it is returned as-is; otherwise it is joined against base
// following RFC 3986 reference resolution, so a trailing slash on base's
// path keeps the join relative to base rather than to base's parent.
func AbsoluteURL(base *url.URL, href string) (*url.URL, error) {
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return u, nil
	}
	rel, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("resolving %q against %s: %w", href, base, err)
	}
	return base.ResolveReference(rel), nil
}

// isAllowed reports whether u's string form passes the whitelist/blacklist
// filters: allowed when the whitelist is empty or contains a substring of
// u, and no blacklist entry is a substring of u. Matching is raw substring,
// case-sensitive, and independent of call order.
func isAllowed(u *url.URL, whitelist, blacklist []string) bool {
	s := u.String()
	if len(whitelist) > 0 {
		matched := false
		for _, w := range whitelist {
			if strings.Contains(s, w) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, b := range blacklist {
		if strings.Contains(s, b) {
			return false
		}
	}
	return true
}

// visitedSet tracks URL string forms that have already been enqueued. It is
// owned exclusively by one engine run and mutated only from the driver
// goroutine, so it needs no locking.
type visitedSet map[string]struct{}

func newVisitedSet() visitedSet {
	return make(visitedSet)
}

// markVisited inserts u's string form into the set, returning true iff it
// was newly inserted. A false return means u was already visited and must
// not be re-enqueued (unless revisit is enabled, in which case callers
// should not consult this at all).
func (v visitedSet) markVisited(u *url.URL) bool {
	s := u.String()
	if _, ok := v[s]; ok {
		return false
	}
	v[s] = struct{}{}
	return true
}
