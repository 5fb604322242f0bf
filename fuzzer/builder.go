package fuzzer

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/garlic0x1/gar-crawl/internal/httpx"
)

const (
	defaultWorkers   int           = 40
	defaultTimeout   time.Duration = 10 * time.Second
	defaultUserAgent string        = "gar-crawl-fuzzer/1.0"
)

type config struct {
	userAgent string
	timeout   time.Duration
	proxyURL  string
	certPath  string
	workers   int
}

// Builder assembles a Fuzzer, the symmetric counterpart of crawler.Builder.
type Builder struct {
	cfg      config
	handlers []FuzzHandler
}

// NewBuilder returns a Builder seeded with the documented defaults:
// worker_bound=40, 10s timeout.
func NewBuilder() *Builder {
	return &Builder{
		cfg: config{
			userAgent: defaultUserAgent,
			timeout:   defaultTimeout,
			workers:   defaultWorkers,
		},
	}
}

// Workers sets the in-flight worker bound.
func (b *Builder) Workers(n int) *Builder {
	b.cfg.workers = n
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
// certificate at certPath.
func (b *Builder) Proxy(proxyURL, certPath string) *Builder {
	b.cfg.proxyURL = proxyURL
	b.cfg.certPath = certPath
	return b
}

// AddHandler registers a callback invoked once per completed request.
func (b *Builder) AddHandler(f FuzzHandler) *Builder {
	b.handlers = append(b.handlers, f)
	return b
}

// Build validates the configuration and returns an immutable Fuzzer, or a
// diagnostic error.
func (b *Builder) Build() (*Fuzzer, error) {
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
		return nil, fmt.Errorf("building fuzzer: %w", err)
	}

	return &Fuzzer{
		cfg:      b.cfg,
		handlers: b.handlers,
		client:   client,
		logger:   log.New(os.Stderr, "fuzzer: ", log.LstdFlags),
	}, nil
}
