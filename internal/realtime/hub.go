package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const (
	// PingInterval and PongWait are used for heartbeat.
	PingInterval = 30
	PongWait     = 60
)

// Workspace events pushed to a signed-in user.
const (
	EventMeetingCompleted = "meeting_completed"
	EventMeetingSaved     = "meeting_saved"
	EventAgendaSaved      = "agenda_saved"
	EventDirectoryChanged = "directory_changed"
	EventReminder         = "reminder"
)

// Hub maintains user_id -> set of connections and pushes workspace events to them.
// With Redis configured every event goes through the user's channel so each instance
// delivers it once to its own connections.
type Hub struct {
	users    map[string]map[string]*Client
	subs     map[string]func()
	mu       sync.RWMutex
	logger   *zap.Logger
	redis    RedisPublisher
	redisSub RedisSubscriber
}

// RedisPublisher publishes user events to other instances.
type RedisPublisher interface {
	PublishUserEvent(userID, event string, payload []byte) error
}

// RedisSubscriber subscribes to a user's channel and invokes handler for incoming events.
type RedisSubscriber interface {
	SubscribeUser(userID string, handler func(event string, payload []byte)) (cancel func(), err error)
}

// NewHub creates a new WebSocket hub. Both Redis arguments may be nil.
func NewHub(logger *zap.Logger, redisPub RedisPublisher, redisSub RedisSubscriber) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		users:    make(map[string]map[string]*Client),
		subs:     make(map[string]func()),
		logger:   logger,
		redis:    redisPub,
		redisSub: redisSub,
	}
}

// Register adds a connection for a user. The first connection starts the Redis subscription.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[c.UserID] == nil {
		h.users[c.UserID] = make(map[string]*Client)
		if h.redisSub != nil {
			userID := c.UserID
			cancel, err := h.redisSub.SubscribeUser(userID, func(event string, payload []byte) {
				h.Send(userID, event, json.RawMessage(payload))
			})
			if err != nil {
				h.logger.Warn("redis subscribe failed", zap.String("user_id", userID), zap.Error(err))
			} else {
				h.subs[userID] = cancel
			}
		}
	}
	h.users[c.UserID][c.ID] = c
	h.logger.Debug("client connected", zap.String("client_id", c.ID), zap.String("user_id", c.UserID))
}

// Unregister removes a connection. The last connection of a user cancels its subscription.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.users[c.UserID]; ok {
		if _, ok := m[c.ID]; !ok {
			return
		}
		delete(m, c.ID)
		close(c.send)
		if len(m) == 0 {
			delete(h.users, c.UserID)
			if cancel, ok := h.subs[c.UserID]; ok {
				cancel()
				delete(h.subs, c.UserID)
			}
		}
	}
	h.logger.Debug("client disconnected", zap.String("client_id", c.ID), zap.String("user_id", c.UserID))
}

// Send delivers an event to the local connections of a user.
func (h *Hub) Send(userID, event string, payload interface{}) {
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		var err error
		if data, err = json.Marshal(payload); err != nil {
			h.logger.Warn("marshal event", zap.String("event", event), zap.Error(err))
			return
		}
	}
	msg := WSMessage{Event: event, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.users[userID] {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("client buffer full, event dropped", zap.String("client_id", c.ID), zap.String("event", event))
		}
	}
}

// Publish delivers an event to every connection of a user across instances.
func (h *Hub) Publish(userID, event string, payload interface{}) {
	if h.redis == nil {
		h.Send(userID, event, payload)
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := h.redis.PublishUserEvent(userID, event, data); err != nil {
		h.logger.Warn("publish event failed, delivering locally", zap.String("event", event), zap.Error(err))
		h.Send(userID, event, json.RawMessage(data))
	}
}

// Connections returns the number of local connections of a user.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}
