// Package mapsurface provides MapSurface implementations: a websocket
// surface that drives the browser-side map through JSON commands, a
// recorder for tests and a disabled surface for the degraded no-map
// state.
package mapsurface

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/projector"
)

// Command is one drawing instruction sent to the browser map.
type Command struct {
	Op       string                 `json:"op"`
	ID       string                 `json:"id,omitempty"`
	Position *model.Position        `json:"position,omitempty"`
	Icon     *projector.Icon        `json:"icon,omitempty"`
	Title    string                 `json:"title,omitempty"`
	Visible  *bool                  `json:"visible,omitempty"`
	Bounds   *Bounds                `json:"bounds,omitempty"`
	Padding  *projector.Padding     `json:"padding,omitempty"`
	PanByX   int                    `json:"panByX,omitempty"`
	Info     *projector.InfoContent `json:"info,omitempty"`
	Status   projector.Status       `json:"status,omitempty"`
}

// Bounds is a lat/lng box in the order the browser map expects.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// Command ops
const (
	OpMarker  = "marker"
	OpMove    = "move"
	OpVisible = "visible"
	OpFit     = "fit"
	OpInfo    = "info"
	OpStatus  = "status"
)

// WSSurface renders by pushing commands over one browser websocket. All
// writes are serialized; after the first write failure or Close the
// surface goes quiet rather than erroring the render path.
type WSSurface struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

func NewWSSurface(conn *websocket.Conn) *WSSurface {
	return &WSSurface{conn: conn}
}

func (s *WSSurface) send(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err := s.conn.WriteJSON(cmd); err != nil {
		log.Debugf("Map surface write failed, going quiet: %v", err)
		s.closed = true
	}
}

func (s *WSSurface) PlaceOrUpdateMarker(id string, pos model.Position, icon projector.Icon, title string) {
	p := pos
	i := icon
	s.send(Command{Op: OpMarker, ID: id, Position: &p, Icon: &i, Title: title})
}

func (s *WSSurface) MoveMarker(id string, pos model.Position) {
	p := pos
	s.send(Command{Op: OpMove, ID: id, Position: &p})
}

func (s *WSSurface) SetMarkerVisible(id string, visible bool) {
	v := visible
	s.send(Command{Op: OpVisible, ID: id, Visible: &v})
}

func (s *WSSurface) FitBounds(b orb.Bound, pad projector.Padding, panByX int) {
	bounds := Bounds{
		MinLat: b.Min.Y(),
		MinLng: b.Min.X(),
		MaxLat: b.Max.Y(),
		MaxLng: b.Max.X(),
	}
	p := pad
	s.send(Command{Op: OpFit, Bounds: &bounds, Padding: &p, PanByX: panByX})
}

func (s *WSSurface) ShowInfo(id string, info projector.InfoContent) {
	i := info
	s.send(Command{Op: OpInfo, ID: id, Info: &i})
}

func (s *WSSurface) SetStatus(status projector.Status) {
	s.send(Command{Op: OpStatus, Status: status})
}

// Close stops all further drawing. The websocket itself is owned and
// closed by the connection handler.
func (s *WSSurface) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
