package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"firecheck-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Called when a user's last connection drops, so their compartment
	// locks can be released.
	onLastDisconnect func(userId uuid.UUID)

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

// SetDisconnectHandler registers the callback invoked when a user's last
// connection closes. Wired by the container after the lock service exists.
func (h *Hub) SetDisconnectHandler(fn func(userId uuid.UUID)) {
	h.onLastDisconnect = fn
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			lastGone := false
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					lastGone = true
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()

			if lastGone && h.onLastDisconnect != nil {
				h.onLastDisconnect(client.UserID)
			}
		}
	}
}

// Send delivers a payload to every connection of one user.
func (h *Hub) Send(userId uuid.UUID, payload []byte) {
	h.mu.RLock()
	clients, localFound := h.clients[userId]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userId})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	// Publish to Redis for connections held by other instances
	if h.rdb != nil {
		envelope, _ := json.Marshal(clusterEnvelope{
			TargetUserID: userId.String(),
			Message:      payload,
		})
		h.rdb.Publish(context.Background(), "cluster_events", envelope)
	}
}

// BroadcastToSession delivers a payload to every client watching one
// inspection session.
func (h *Hub) BroadcastToSession(sessionId uuid.UUID, payload []byte) {
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			if client.SessionID != sessionId {
				continue
			}
			select {
			case client.Send <- payload:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		envelope, _ := json.Marshal(clusterEnvelope{
			TargetSessionID: sessionId.String(),
			Message:         payload,
		})
		h.rdb.Publish(context.Background(), "cluster_events", envelope)
	}
}

type clusterEnvelope struct {
	TargetUserID    string          `json:"target_user_id,omitempty"`
	TargetSessionID string          `json:"target_session_id,omitempty"`
	Message         json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". When a message arrives,
	// deliver it to matching local connections only; the publishing instance
	// already served its own.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if envelope.TargetSessionID != "" {
			sessionId, err := uuid.Parse(envelope.TargetSessionID)
			if err != nil {
				continue
			}
			h.deliverToSessionLocal(sessionId, envelope.Message)
			continue
		}

		uid, err := uuid.Parse(envelope.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- envelope.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) deliverToSessionLocal(sessionId uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			if client.SessionID != sessionId {
				continue
			}
			select {
			case client.Send <- payload:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
}
