package handler

import (
	"net"
	"sync"
	"testing"
	"time"

	"takeout_manager/model"

	clientws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedOrder(id uint) model.Order {
	return model.Order{
		DTO:        model.DTO{ID: id},
		PublicCode: "ORD-TEST0001",
		Status:     model.OrderPending,
	}
}

func startFeedServer(t *testing.T, snapshot []model.Order) string {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/feed/ws", websocket.New(func(c *websocket.Conn) {
		runAdminFeed(c, snapshot)
	}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go app.Listener(ln)
	t.Cleanup(func() { app.Shutdown() })

	return "ws://" + ln.Addr().String() + "/feed/ws"
}

func dialFeed(t *testing.T, url string) *clientws.Conn {
	t.Helper()

	var conn *clientws.Conn
	require.Eventually(t, func() bool {
		c, _, err := clientws.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		conn = c
		return true
	}, 2*time.Second, 20*time.Millisecond)

	t.Cleanup(func() { conn.Close() })
	return conn
}

// A snapshot replay racing live event fan-out must never write the same
// socket from two goroutines; here publishers hammer the feed while a
// client connects and drains everything.
func TestFeedSnapshotAndBroadcastDoNotInterleave(t *testing.T) {
	snapshot := make([]model.Order, 10)
	for i := range snapshot {
		snapshot[i] = feedOrder(uint(i + 1))
	}

	url := startFeedServer(t, snapshot)
	conn := dialFeed(t, url)

	const publishers = 4
	const perPublisher = 25

	// Snapshot frames come first: they are written in the same critical
	// section that registers the connection. The first frame proves the
	// socket is registered, so publishers started here contend with the
	// rest of the replay without their events being dropped.
	seen := make(map[uint]bool)
	var wg sync.WaitGroup
	for i := 0; i < len(snapshot); i++ {
		var ev model.OrderEvent
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		require.NoError(t, conn.ReadJSON(&ev))
		require.NotNil(t, ev.New)
		assert.Equal(t, model.EventInserted, ev.Kind)
		assert.LessOrEqual(t, ev.New.ID, uint(len(snapshot)))
		seen[ev.New.ID] = true

		if i == 0 {
			for p := 0; p < publishers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := 0; i < perPublisher; i++ {
						o := feedOrder(uint(1000 + p*perPublisher + i))
						PublishOrderEvent(model.OrderEvent{Kind: model.EventInserted, New: &o})
					}
				}(p)
			}
		}
	}
	assert.Len(t, seen, len(snapshot))

	// Then every published event, exactly once each, in whole frames.
	for i := 0; i < publishers*perPublisher; i++ {
		var ev model.OrderEvent
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		require.NoError(t, conn.ReadJSON(&ev))
		require.NotNil(t, ev.New)
		require.False(t, seen[ev.New.ID], "event %d delivered twice", ev.New.ID)
		seen[ev.New.ID] = true
	}
	assert.Len(t, seen, len(snapshot)+publishers*perPublisher)

	wg.Wait()
	conn.Close()

	assert.Eventually(t, func() bool {
		feedMutex.Lock()
		defer feedMutex.Unlock()
		return len(adminConns) == 0
	}, 2*time.Second, 20*time.Millisecond)
}
