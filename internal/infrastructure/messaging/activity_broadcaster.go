// Package messaging provides the live activity feed for the admin dashboard.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/manager"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
)

// ActivityClient represents one connected admin dashboard socket.
type ActivityClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// ActivityEvent is one item on the live feed.
type ActivityEvent struct {
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
}

// StatsPayload is the periodic snapshot sent on each tick.
type StatsPayload struct {
	Kind         string `json:"kind"`
	LiveSessions int    `json:"liveSessions"`
	CachedReads  int    `json:"cachedReads"`
}

// ActivityBroadcaster fans lead and engagement activity out to connected
// admin clients. Slow clients are dropped rather than blocking the feed.
type ActivityBroadcaster struct {
	clients    map[*ActivityClient]bool
	register   chan *ActivityClient
	unregister chan *ActivityClient
	events     chan ActivityEvent
	cache      *manager.Manager
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewActivityBroadcaster creates a new broadcaster instance.
func NewActivityBroadcaster(cache *manager.Manager, logger *logging.ChanneledLogger) *ActivityBroadcaster {
	return &ActivityBroadcaster{
		clients:    make(map[*ActivityClient]bool),
		register:   make(chan *ActivityClient),
		unregister: make(chan *ActivityClient),
		events:     make(chan ActivityEvent, 64),
		cache:      cache,
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *ActivityBroadcaster) Run() {
	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			b.logger.System().Debug("Activity client registered", "clients", b.clientCount())

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			b.logger.System().Debug("Activity client unregistered", "clients", b.clientCount())

		case event := <-b.events:
			b.send(event)

		case <-ticker.C:
			b.sendStats()
		}
	}
}

// Register queues a client for registration.
func (b *ActivityBroadcaster) Register(client *ActivityClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *ActivityBroadcaster) Unregister(client *ActivityClient) {
	b.unregister <- client
}

// Publish enqueues an activity event without blocking the caller. The feed
// is best effort; a full queue drops the event.
func (b *ActivityBroadcaster) Publish(kind, label string) {
	event := ActivityEvent{Kind: kind, Label: label, Timestamp: time.Now().UTC()}
	select {
	case b.events <- event:
	default:
		b.logger.System().Warn("Activity feed queue full, event dropped", "kind", kind)
	}
}

func (b *ActivityBroadcaster) send(event ActivityEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	b.broadcast(payload)
}

func (b *ActivityBroadcaster) sendStats() {
	b.mu.RLock()
	hasClients := len(b.clients) > 0
	b.mu.RUnlock()
	if !hasClients {
		return
	}

	stats := b.cache.Stats()
	payload, err := json.Marshal(StatsPayload{
		Kind:         "stats",
		LiveSessions: stats["sessions"].(int),
		CachedReads:  stats["queryEntries"].(int),
	})
	if err != nil {
		return
	}
	b.broadcast(payload)
}

func (b *ActivityBroadcaster) broadcast(payload []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for client := range b.clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer; the write pump will unregister it.
		}
	}
}

func (b *ActivityBroadcaster) clientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// WritePump drains a client's send channel onto its socket. Runs as a
// goroutine per connection.
func (b *ActivityBroadcaster) WritePump(client *ActivityClient) {
	defer client.Conn.Close()

	for payload := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			b.Unregister(client)
			return
		}
	}
}
