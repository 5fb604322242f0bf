package sink

import (
	"encoding/json"

	"github.com/garlic0x1/gar-crawl/crawler"
)

// PageEvent is the JSON-serializable record forwarded to a Producer for
// each dispatched page.
type PageEvent struct {
	URL        string `json:"url"`
	Depth      uint   `json:"depth"`
	BodyLength int    `json:"body_length"`
}

// NewPageHandler returns a crawler.Handler that marshals every dispatched
// page into a PageEvent and forwards it through queue. The sink is
// best-effort: a marshal or produce failure never fails the crawl.
func NewPageHandler(queue Producer) crawler.Handler {
	return func(args *crawler.HandlerArgs) {
		payload, err := json.Marshal(PageEvent{
			URL:        args.Page.URL.String(),
			Depth:      args.Page.Depth,
			BodyLength: len(args.Page.Text),
		})
		if err != nil {
			return
		}
		_ = queue.Produce(payload)
	}
}
