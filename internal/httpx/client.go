// Package httpx builds the HTTP client shared by the crawler and fuzzer
// engines: a timeout, an optional proxy with a custom trusted root, and a
// retry/backoff transport.
package httpx

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/PuerkitoBio/rehttp"
)

// Options configures the shared HTTP client. ProxyURL and CertPath must
// either both be empty or both be set.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	ProxyURL  string
	CertPath  string
}

// NewClient builds an *http.Client wrapping a rehttp transport that retries
// temporary errors with exponential jitter backoff. If a proxy and DER root
// certificate are configured, both are loaded and attached before the
// client is built; failure to read or parse the certificate is a builder
// validation error, not a runtime fetch error.
func NewClient(opts Options) (*http.Client, error) {
	base := &http.Transport{}

	if opts.ProxyURL != "" || opts.CertPath != "" {
		if opts.ProxyURL == "" || opts.CertPath == "" {
			return nil, fmt.Errorf("proxy requires both a proxy URL and a root certificate path")
		}
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL %q: %w", opts.ProxyURL, err)
		}
		der, err := os.ReadFile(opts.CertPath)
		if err != nil {
			return nil, fmt.Errorf("reading root certificate %q: %w", opts.CertPath, err)
		}
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, fmt.Errorf("parsing DER root certificate %q: %w", opts.CertPath, err)
		}
		pool := x509.NewCertPool()
		pool.AddCert(cert)

		base.Proxy = http.ProxyURL(proxyURL)
		base.TLSClientConfig = &tls.Config{RootCAs: pool}
	}

	transport := rehttp.NewTransport(
		base,
		rehttp.RetryAll(rehttp.RetryMaxRetries(3), rehttp.RetryTemporaryErr()),
		rehttp.ExpJitterDelay(1, 10*time.Second),
	)

	return &http.Client{Timeout: opts.Timeout, Transport: transport}, nil
}
