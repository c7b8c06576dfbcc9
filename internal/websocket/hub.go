// Package websocket relays feedback events to connected operators.
package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/metrics"
	"bookbot-backend/internal/models"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Subscriber yields payloads published on channel until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

type RedisSubscriber struct {
	client *redis.Client
}

func NewRedisSubscriber(client *redis.Client) *RedisSubscriber {
	return &RedisSubscriber{client: client}
}

func (s *RedisSubscriber) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	pubsub := s.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Hub keeps one subscription open while at least one client is connected
// and fans every payload out to all clients.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*websocket.Conn
	subscriber  Subscriber
	channel     string
	cancel      context.CancelFunc
}

// NewHub accepts a nil subscriber; the stream endpoint then answers 503.
func NewHub(subscriber Subscriber, channel string) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]*websocket.Conn),
		subscriber:  subscriber,
		channel:     channel,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.subscriber == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Feedback stream is not configured"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.New()
	h.registerConnection(id, conn)

	// Clients only listen; reading detects the disconnect.
	go func() {
		defer h.unregisterConnection(id, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) registerConnection(id uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[id] = conn
	metrics.TrackStreamClient(true)

	if len(h.connections) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancel = cancel
		go h.subscribe(ctx)
	}

	logging.Info().Str("client", id.String()).Int("clients", len(h.connections)).Msg("feedback stream client connected")
}

func (h *Hub) unregisterConnection(id uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	if _, ok := h.connections[id]; !ok {
		return
	}
	delete(h.connections, id)
	metrics.TrackStreamClient(false)

	if len(h.connections) == 0 && h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}

	logging.Info().Str("client", id.String()).Msg("feedback stream client disconnected")
}

func (h *Hub) subscribe(ctx context.Context) {
	payloads, err := h.subscriber.Subscribe(ctx, h.channel)
	if err != nil {
		logging.Error().Err(err).Str("channel", h.channel).Msg("feedback subscription failed")
		h.dropSubscription(ctx)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-payloads:
			if !ok {
				logging.Warn().Str("channel", h.channel).Msg("feedback subscription closed")
				h.dropSubscription(ctx)
				return
			}
			h.broadcast(data)
		}
	}
}

// dropSubscription disconnects every client of a subscription that can no
// longer deliver, so the next client to connect starts a fresh one. It does
// nothing if ctx was already cancelled, since a newer subscription may own
// the current clients.
func (h *Hub) dropSubscription(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	h.closeAll(websocket.CloseTryAgainLater, "feedback stream unavailable")
}

// broadcast is only called from the subscription goroutine, so writes to a
// connection never race.
func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, conn := range h.connections {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logging.Debug().Err(err).Str("client", id.String()).Msg("feedback stream write failed")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects every client and stops the subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeAll(websocket.CloseGoingAway, "server shutting down")
}

// closeAll must be called with h.mu held.
func (h *Hub) closeAll(code int, reason string) {
	for id, conn := range h.connections {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, reason),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.connections, id)
		metrics.TrackStreamClient(false)
	}
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}
