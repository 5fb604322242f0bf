package crawler

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/garlic0x1/gar-crawl/internal/env"
	"github.com/garlic0x1/gar-crawl/internal/httpx"
)

const (
	defaultMaxDepth  uint          = 2
	defaultWorkers   int           = 40
	defaultTimeout   time.Duration = 10 * time.Second
	defaultUserAgent string        = "gar-crawl/1.0"
	defaultRevisit   bool          = false
)

// config is the builder-produced, immutable tuple the engine runs against.
type config struct {
	userAgent string
	timeout   time.Duration
	proxyURL  string
	certPath  string

	maxDepth uint
	workers  int
	revisit  bool

	whitelist []string
	blacklist []string
}

// Builder assembles a Crawler with defaults, exposed as a fluent chain so a
// full configuration reads as one expression.
type Builder struct {
	cfg      config
	registry *registry
	err      error
}

// NewBuilder returns a Builder seeded with the documented defaults:
// max_depth=2, worker_bound=40, revisit=false, 10s timeout.
func NewBuilder() *Builder {
	return &Builder{
		cfg: config{
			userAgent: defaultUserAgent,
			timeout:   defaultTimeout,
			maxDepth:  defaultMaxDepth,
			workers:   defaultWorkers,
			revisit:   defaultRevisit,
		},
		registry: newRegistry(),
	}
}

// FromEnv overlays defaults read from the environment (USER_AGENT,
// WORKERS, MAX_DEPTH, TIMEOUT_SECONDS, REVISIT). Unset variables leave the
// existing defaults in place.
func FromEnv() *Builder {
	b := NewBuilder()
	b.cfg.userAgent = env.GetEnv("USER_AGENT", b.cfg.userAgent)
	b.cfg.workers = env.GetEnvAsInt("WORKERS", b.cfg.workers)
	b.cfg.maxDepth = uint(env.GetEnvAsInt("MAX_DEPTH", int(b.cfg.maxDepth)))
	b.cfg.timeout = time.Duration(env.GetEnvAsInt("TIMEOUT_SECONDS", int(b.cfg.timeout/time.Second))) * time.Second
	if v := env.GetEnv("REVISIT", ""); v == "1" || v == "true" {
		b.cfg.revisit = true
	}
	return b
}

// Depth sets the maximum crawl depth.
func (b *Builder) Depth(d uint) *Builder {
	b.cfg.maxDepth = d
	return b
}

// Workers sets the in-flight worker bound.
func (b *Builder) Workers(n int) *Builder {
	b.cfg.workers = n
	return b
}

// Revisit toggles whether the visited set gates enqueue.
func (b *Builder) Revisit(revisit bool) *Builder {
	b.cfg.revisit = revisit
	return b
}

// UserAgent sets the User-Agent header sent with every request.
func (b *Builder) UserAgent(ua string) *Builder {
	b.cfg.userAgent = ua
	return b
}

// Timeout sets the per-request timeout.
func (b *Builder) Timeout(seconds int, nanoseconds int) *Builder {
	b.cfg.timeout = time.Duration(seconds)*time.Second + time.Duration(nanoseconds)
	return b
}

// Proxy routes requests through proxyURL, trusting the DER-encoded root
// certificate at certPath. Loading happens at Build() time so a missing or
// unparsable certificate surfaces as a builder validation error.
func (b *Builder) Proxy(proxyURL, certPath string) *Builder {
	b.cfg.proxyURL = proxyURL
	b.cfg.certPath = certPath
	return b
}

// Whitelist adds a substring that a discovered URL must contain to be
// crawled. The seed URL is always fetched regardless of whitelist.
func (b *Builder) Whitelist(expr string) *Builder {
	b.cfg.whitelist = append(b.cfg.whitelist, expr)
	return b
}

// Blacklist adds a substring that excludes a discovered URL from being
// crawled.
func (b *Builder) Blacklist(expr string) *Builder {
	b.cfg.blacklist = append(b.cfg.blacklist, expr)
	return b
}

// OnPage registers a side-effecting callback invoked once per page.
func (b *Builder) OnPage(f Handler) *Builder {
	b.registry.addHandler(OnPage(), f)
	return b
}

// AddHandler registers a side-effecting callback invoked once per element
// matching sel, in document order.
func (b *Builder) AddHandler(sel string, f Handler) *Builder {
	b.registry.addHandler(OnSelector(sel), f)
	return b
}

// OnPagePropagator registers a URL-producing callback invoked once per
// page.
func (b *Builder) OnPagePropagator(f Propagator) *Builder {
	b.registry.addPropagator(OnPage(), f)
	return b
}

// AddPropagator registers a URL-producing callback invoked once per element
// matching sel.
func (b *Builder) AddPropagator(sel string, f Propagator) *Builder {
	b.registry.addPropagator(OnSelector(sel), f)
	return b
}

// AddDefaultPropagators registers the two stock propagators: one on
// "*[href]" and one on "*[src]", each resolving the respective attribute
// against the page URL via AbsoluteURL and yielding at most one URL per
// element.
func (b *Builder) AddDefaultPropagators() *Builder {
	b.AddPropagator("*[href]", attrPropagator("href"))
	b.AddPropagator("*[src]", attrPropagator("src"))
	return b
}

// attrPropagator builds a propagator that reads attr off the matched
// element and resolves it against the page URL, yielding at most one URL.
func attrPropagator(attr string) Propagator {
	return func(args *HandlerArgs) []*url.URL {
		if args.Element == nil {
			return nil
		}
		raw, ok := args.Element.Attr(attr)
		if !ok {
			return nil
		}
		u, err := AbsoluteURL(args.Page.URL, raw)
		if err != nil {
			return nil
		}
		return []*url.URL{u}
	}
}

// Build validates the configuration (worker_bound >= 1, proxy certificate
// decodable when configured) and returns an immutable Crawler, or a
// diagnostic error.
func (b *Builder) Build() (*Crawler, error) {
	if b.cfg.workers < 1 {
		return nil, fmt.Errorf("worker bound must be >= 1, got %d", b.cfg.workers)
	}

	client, err := httpx.NewClient(httpx.Options{
		Timeout:   b.cfg.timeout,
		UserAgent: b.cfg.userAgent,
		ProxyURL:  b.cfg.proxyURL,
		CertPath:  b.cfg.certPath,
	})
	if err != nil {
		return nil, fmt.Errorf("building crawler: %w", err)
	}

	return &Crawler{
		cfg:      b.cfg,
		registry: b.registry,
		client:   client,
		clock:    httpx.NewClock(),
		logger:   log.New(os.Stderr, "crawler: ", log.LstdFlags),
	}, nil
}
