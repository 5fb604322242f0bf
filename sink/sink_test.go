package sink

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/garlic0x1/gar-crawl/crawler"
)

func TestPageHandlerForwardsEvent(t *testing.T) {
	queue := NewChannelQueue()
	events := make(chan []byte, 1)
	go func() { _ = queue.Consume(events) }()

	pageURL, _ := url.Parse("http://example.com/page")
	handler := NewPageHandler(queue)
	handler(&crawler.HandlerArgs{Page: &crawler.Page{
		URL:   pageURL,
		Text:  "<body>hello</body>",
		Depth: 1,
	}})

	payload := <-events
	queue.Close()

	var event PageEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("PageHandler failed: payload not JSON: %v", err)
	}
	if event.URL != "http://example.com/page" {
		t.Errorf("PageHandler failed: expected URL http://example.com/page got %s", event.URL)
	}
	if event.Depth != 1 {
		t.Errorf("PageHandler failed: expected depth 1 got %d", event.Depth)
	}
	if event.BodyLength != len("<body>hello</body>") {
		t.Errorf("PageHandler failed: expected body length %d got %d", len("<body>hello</body>"), event.BodyLength)
	}
}

func TestChannelQueueRoundTrip(t *testing.T) {
	queue := NewChannelQueue()
	events := make(chan []byte, 2)
	go func() { _ = queue.Consume(events) }()

	if err := queue.Produce([]byte("one")); err != nil {
		t.Fatalf("ChannelQueue#Produce failed: %v", err)
	}
	if err := queue.Produce([]byte("two")); err != nil {
		t.Fatalf("ChannelQueue#Produce failed: %v", err)
	}
	first := <-events
	second := <-events
	queue.Close()

	if string(first) != "one" || string(second) != "two" {
		t.Errorf("ChannelQueue failed: expected [one two] got [%s %s]", first, second)
	}
}
