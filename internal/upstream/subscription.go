package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/config"
	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/util"
)

// GraphQLWSSubprotocol is the graphql-transport-ws subprotocol name.
const GraphQLWSSubprotocol = "graphql-transport-ws"

// graphql-transport-ws message types
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

// operationID returns the id for the single subscribe operation on a
// connection. Fresh per connection so a server that remembers completed
// ids never confuses a reconnect with a duplicate subscribe.
func operationID() string {
	id, err := util.GenerateUniqueID(4)
	if err != nil {
		return "1"
	}
	return id
}

// SubscribeLocations maintains the location-share subscription until ctx
// is cancelled, invoking deliver for every valid event. Disconnects are
// transient: the client reconnects with exponential backoff and the next
// events simply resume last-write-wins merging; the gap shows up as
// staleness, not as an error. onState, when non-nil, is told whether the
// subscription is currently connected.
func (c *Client) SubscribeLocations(ctx context.Context, deliver func(model.LocationUpdate), onState func(connected bool)) {
	backoff := config.ReconnectMinBackoff
	for {
		if ctx.Err() != nil {
			return
		}

		err := c.runSubscription(ctx, deliver, func() {
			backoff = config.ReconnectMinBackoff
			if onState != nil {
				onState(true)
			}
		})
		if ctx.Err() != nil {
			return
		}
		if onState != nil {
			onState(false)
		}
		log.Warnf("Location subscription dropped: %v; reconnecting in %v", err, backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > config.ReconnectMaxBackoff {
			backoff = config.ReconnectMaxBackoff
		}
	}
}

// runSubscription performs one connect/ack/subscribe/read cycle and
// returns when the transport fails or ctx is cancelled.
func (c *Client) runSubscription(ctx context.Context, deliver func(model.LocationUpdate), onConnected func()) error {
	dialer := websocket.Dialer{
		Subprotocols:     []string{GraphQLWSSubprotocol},
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	// Close the socket when ctx is cancelled so the read loop unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(gqlwsMessage{Type: gqlConnectionInit}); err != nil {
		return fmt.Errorf("connection_init: %w", err)
	}

	var msg gqlwsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("await ack: %w", err)
	}
	if msg.Type != gqlConnectionAck {
		return fmt.Errorf("expected connection_ack, got %q", msg.Type)
	}

	payload, err := json.Marshal(graphqlRequest{Query: locationShareSubscription})
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(gqlwsMessage{ID: operationID(), Type: gqlSubscribe, Payload: payload}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	onConnected()
	log.Info("Location subscription established")

	for {
		var msg gqlwsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		switch msg.Type {
		case gqlNext:
			evt, ok := decodeLocationEvent(msg.Payload)
			if ok {
				deliver(evt)
			}
		case gqlPing:
			if err := conn.WriteJSON(gqlwsMessage{Type: gqlPong}); err != nil {
				return fmt.Errorf("pong: %w", err)
			}
		case gqlError:
			return fmt.Errorf("subscription error: %s", string(msg.Payload))
		case gqlComplete:
			return fmt.Errorf("subscription completed by server")
		}
	}
}

// decodeLocationEvent unpacks one "next" payload. Malformed events are
// dropped here so they never reach the store.
func decodeLocationEvent(payload json.RawMessage) (model.LocationUpdate, bool) {
	var out locationEventPayload
	if err := json.Unmarshal(payload, &out); err != nil {
		log.Warnf("Dropping undecodable location event: %v", err)
		return model.LocationUpdate{}, false
	}
	if out.Data.OnVehicleLocationShare == nil {
		return model.LocationUpdate{}, false
	}
	u, err := out.Data.OnVehicleLocationShare.toUpdate()
	if err != nil {
		log.Warnf("Dropping location event: %v", err)
		return model.LocationUpdate{}, false
	}
	return u, true
}
