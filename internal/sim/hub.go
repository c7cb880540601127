package sim

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

// graphql-transport-ws message types handled by the simulator server.
const (
	gqlConnectionInit = "connection_init"
	gqlConnectionAck  = "connection_ack"
	gqlSubscribe      = "subscribe"
	gqlNext           = "next"
	gqlError          = "error"
	gqlComplete       = "complete"
	gqlPing           = "ping"
	gqlPong           = "pong"
)

type gqlwsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type subscriber struct {
	conn  *websocket.Conn
	mu    sync.Mutex
	subID string
}

func (s *subscriber) write(msg gqlwsMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// Hub fans location events out to every connected location-share
// subscriber.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// HandleConnection services one graphql-transport-ws client until it
// disconnects.
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	sub := &subscriber{conn: conn}
	defer func() {
		h.remove(sub)
		conn.Close()
	}()

	for {
		var msg gqlwsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case gqlConnectionInit:
			if err := sub.write(gqlwsMessage{Type: gqlConnectionAck}); err != nil {
				return
			}
		case gqlSubscribe:
			var payload struct {
				Query string `json:"query"`
			}
			_ = json.Unmarshal(msg.Payload, &payload)
			if !strings.Contains(payload.Query, "onVehicleLocationShare") {
				errPayload, _ := json.Marshal([]map[string]string{{"message": "unsupported subscription"}})
				_ = sub.write(gqlwsMessage{ID: msg.ID, Type: gqlError, Payload: errPayload})
				continue
			}
			sub.mu.Lock()
			sub.subID = msg.ID
			sub.mu.Unlock()
			h.add(sub)
		case gqlComplete:
			h.remove(sub)
		case gqlPing:
			if err := sub.write(gqlwsMessage{Type: gqlPong}); err != nil {
				return
			}
		}
	}
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast sends one location event to every subscriber. Slow or broken
// clients are dropped.
func (h *Hub) Broadcast(evt model.LocationUpdate) {
	payload, err := json.Marshal(locationEventEnvelope(evt))
	if err != nil {
		log.Errorf("Failed to marshal location event: %v", err)
		return
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		subID := sub.subID
		sub.mu.Unlock()
		if err := sub.write(gqlwsMessage{ID: subID, Type: gqlNext, Payload: payload}); err != nil {
			h.remove(sub)
			sub.conn.Close()
		}
	}
}
