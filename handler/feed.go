package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"takeout_manager/config"
	"takeout_manager/database"
	"takeout_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const feedChannel = "orders:feed"

var (
	feedMutex   sync.Mutex
	adminConns  = make(map[*websocket.Conn]bool)
	orderConns  = make(map[string]map[*websocket.Conn]bool)
	redisClient *redis.Client
)

// InitFeed connects the redis relay that fans order events out across
// instances. Without redis, events still reach sockets on this instance.
func InitFeed() {
	addr := config.ConfigDefault("REDIS_ADDR", "localhost:6379")
	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
	})

	go startFeedRelay()
}

func startFeedRelay() {
	ctx := context.Background()
	sub := redisClient.Subscribe(ctx, feedChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var ev model.OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("Feed relay: bad payload: %v", err)
			continue
		}
		deliverOrderEvent(ev)
	}
}

// PublishOrderEvent pushes an order change to every connected feed. It
// goes through redis so all instances see it; if redis is down the event
// is delivered to local sockets directly.
func PublishOrderEvent(ev model.OrderEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Feed publish: marshal failed: %v", err)
		return
	}

	if redisClient != nil {
		err := redisClient.Publish(context.Background(), feedChannel, payload).Err()
		if err == nil {
			return
		}
		log.Printf("Feed publish: redis unavailable, delivering locally: %v", err)
	}

	deliverOrderEvent(ev)
}

func deliverOrderEvent(ev model.OrderEvent) {
	feedMutex.Lock()
	defer feedMutex.Unlock()

	for conn := range adminConns {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(adminConns, conn)
		}
	}

	code := ev.Code()
	for conn := range orderConns[code] {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(orderConns[code], conn)
		}
	}
	if len(orderConns[code]) == 0 {
		delete(orderConns, code)
	}
}

// AdminOrderFeed streams every order change to a dashboard socket. The
// current orders are replayed first as inserted frames, so a reconnecting
// dashboard resyncs without a separate fetch.
func AdminOrderFeed(c *websocket.Conn) {
	var orders []model.Order
	if err := database.DB.Order("created_at desc").Find(&orders).Error; err != nil {
		log.Printf("Admin feed: snapshot failed: %v", err)
	}
	runAdminFeed(c, orders)
}

// runAdminFeed registers the socket and replays the snapshot in one
// critical section, so the replay can't interleave with a concurrent
// deliverOrderEvent write. Websocket connections allow one writer at a
// time; feedMutex is that writer lock.
func runAdminFeed(c *websocket.Conn, snapshot []model.Order) {
	feedMutex.Lock()
	adminConns[c] = true
	for i := range snapshot {
		if err := c.WriteJSON(model.OrderEvent{Kind: model.EventInserted, New: &snapshot[i]}); err != nil {
			break
		}
	}
	feedMutex.Unlock()

	// Block until the client goes away. Inbound frames are ignored.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	feedMutex.Lock()
	delete(adminConns, c)
	feedMutex.Unlock()
	c.Close()
}

// OrderFeed streams changes for one order, keyed by its public code.
func OrderFeed(c *websocket.Conn) {
	code := c.Params("code")

	var snapshot *model.Order
	var order model.Order
	if err := database.DB.Where("public_code = ?", code).First(&order).Error; err == nil {
		snapshot = &order
	}
	runOrderFeed(c, code, snapshot)
}

// runOrderFeed mirrors runAdminFeed for a single order's room.
func runOrderFeed(c *websocket.Conn, code string, snapshot *model.Order) {
	feedMutex.Lock()
	if orderConns[code] == nil {
		orderConns[code] = make(map[*websocket.Conn]bool)
	}
	orderConns[code][c] = true
	if snapshot != nil {
		c.WriteJSON(model.OrderEvent{Kind: model.EventInserted, New: snapshot})
	}
	feedMutex.Unlock()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	feedMutex.Lock()
	delete(orderConns[code], c)
	if len(orderConns[code]) == 0 {
		delete(orderConns, code)
	}
	feedMutex.Unlock()
	c.Close()
}
