package fuzzer

import (
	"log"
	"net/http"
	"net/url"
)

// Fuzzer is the immutable, built engine. NewBuilder() produces the Builder
// that assembles one.
type Fuzzer struct {
	cfg      config
	handlers []FuzzHandler
	client   *http.Client
	logger   *log.Logger
}

// FuzzGet requests every URL urls yields, GET, dispatching handlers with
// the raw response. It follows the same bounded producer/consumer shape as
// crawler.Crawl, but the source of work is urls.Next() rather than a FIFO
// queue: no depth, no visited set, no propagators. Invalid URLs from the
// source are silently skipped (they were never requests to begin with) and
// do not count against the worker bound.
func (f *Fuzzer) FuzzGet(urls URLSource) ([]error, error) {
	var errs []error
	completion := make(chan fuzzResult, f.cfg.workers)
	inFlight := 0
	exhausted := false

	for {
		for inFlight < f.cfg.workers && !exhausted {
			raw, ok := urls.Next()
			if !ok {
				exhausted = true
				break
			}
			u, err := url.Parse(raw)
			if err != nil {
				continue
			}
			inFlight++
			go fetchGet(u, f.client, f.cfg.userAgent, completion)
		}

		if exhausted && inFlight == 0 {
			break
		}

		res := <-completion
		inFlight--
		if res.err != nil {
			f.logger.Println(res.err)
			errs = append(errs, res.err)
			continue
		}
		f.dispatch(res.url, res.resp)
	}

	return errs, nil
}

// FuzzPost pairs URLs with request bodies from source and issues a POST for
// each pair, otherwise identical to FuzzGet.
func (f *Fuzzer) FuzzPost(source URLBodySource) ([]error, error) {
	var errs []error
	completion := make(chan fuzzResult, f.cfg.workers)
	inFlight := 0
	exhausted := false

	for {
		for inFlight < f.cfg.workers && !exhausted {
			raw, body, ok := source.Next()
			if !ok {
				exhausted = true
				break
			}
			u, err := url.Parse(raw)
			if err != nil {
				continue
			}
			inFlight++
			go fetchPost(u, body, f.client, f.cfg.userAgent, completion)
		}

		if exhausted && inFlight == 0 {
			break
		}

		res := <-completion
		inFlight--
		if res.err != nil {
			f.logger.Println(res.err)
			errs = append(errs, res.err)
			continue
		}
		f.dispatch(res.url, res.resp)
	}

	return errs, nil
}

func (f *Fuzzer) dispatch(u *url.URL, resp *http.Response) {
	defer resp.Body.Close()
	for _, h := range f.handlers {
		h(FuzzHandlerArgs{URL: u, Response: resp, Client: f.client})
	}
}
