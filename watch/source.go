package watch

import (
	"context"
	"net/http"

	"takeout_manager/model"

	"github.com/fasthttp/websocket"
)

// FeedSource subscribes to the server's order feed over websocket.
// An empty filter follows every order (the admin feed); a public code
// follows just that order.
type FeedSource struct {
	// BaseURL is the API root, e.g. ws://host:8002/api/v1.
	BaseURL string
	// Header carries auth cookies for the admin feed.
	Header http.Header
	// Dialer defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer
}

func (s *FeedSource) feedURL(filter string) string {
	if filter == "" {
		return s.BaseURL + "/admin/orders/feed/ws"
	}
	return s.BaseURL + "/orders/feed/" + filter + "/ws"
}

// Subscribe dials the feed and streams events until the connection drops
// or ctx is done. The returned channel closes when the stream ends.
func (s *FeedSource) Subscribe(ctx context.Context, filter string) (<-chan model.OrderEvent, error) {
	dialer := s.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, s.feedURL(filter), s.Header)
	if err != nil {
		return nil, err
	}

	events := make(chan model.OrderEvent)

	// Scope the closer to this attempt: when the reader exits (connection
	// drop or cancellation) the closer goroutine goes with it instead of
	// parking until the watcher shuts down.
	connCtx, connCancel := context.WithCancel(ctx)
	go func() {
		<-connCtx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer connCancel()
		for {
			var ev model.OrderEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case events <- ev:
			case <-connCtx.Done():
				return
			}
		}
	}()

	return events, nil
}
