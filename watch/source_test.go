package watch

import (
	"context"
	"net"
	"runtime"
	"testing"
	"time"

	"takeout_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startFeedServer serves the admin feed path, sending count events per
// connection and then hanging up.
func startFeedServer(t *testing.T, count int) string {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/admin/orders/feed/ws", websocket.New(func(c *websocket.Conn) {
		for i := 0; i < count; i++ {
			o := order(uint(i+1), "ORD-FEED0001", model.OrderPending)
			if err := c.WriteJSON(model.OrderEvent{Kind: model.EventInserted, New: &o}); err != nil {
				return
			}
		}
	}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go app.Listener(ln)
	t.Cleanup(func() { app.Shutdown() })

	return "ws://" + ln.Addr().String()
}

func subscribeAndDrain(t *testing.T, src *FeedSource, want int) {
	t.Helper()

	var events <-chan model.OrderEvent
	require.Eventually(t, func() bool {
		ch, err := src.Subscribe(context.Background(), "")
		if err != nil {
			return false
		}
		events = ch
		return true
	}, 2*time.Second, 20*time.Millisecond)

	got := 0
	for range events {
		got++
	}
	assert.Equal(t, want, got)
}

func TestFeedSourceStreamsUntilServerHangsUp(t *testing.T) {
	base := startFeedServer(t, 3)
	src := &FeedSource{BaseURL: base}

	// channel closes on its own when the server drops the connection
	subscribeAndDrain(t, src, 3)
}

func TestFeedSourceReleasesGoroutinesPerAttempt(t *testing.T) {
	base := startFeedServer(t, 1)
	src := &FeedSource{BaseURL: base}

	// warm up the server's worker pool before taking the baseline
	subscribeAndDrain(t, src, 1)
	baseline := runtime.NumGoroutine()

	// the ctx is never cancelled, so anything keyed to it would pile up
	// one goroutine per reconnect cycle
	for i := 0; i < 10; i++ {
		subscribeAndDrain(t, src, 1)
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline+3
	}, 3*time.Second, 50*time.Millisecond)
}

func TestFeedSourceURLs(t *testing.T) {
	src := &FeedSource{BaseURL: "ws://host/api/v1"}
	assert.Equal(t, "ws://host/api/v1/admin/orders/feed/ws", src.feedURL(""))
	assert.Equal(t, "ws://host/api/v1/orders/feed/ORD-AAAA1111/ws", src.feedURL("ORD-AAAA1111"))
}
