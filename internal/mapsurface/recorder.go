package mapsurface

import (
	"sync"

	"github.com/paulmach/orb"

	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/projector"
)

// Recorder is a MapSurface that remembers every command, for tests.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	closed   bool
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) record(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.commands = append(r.commands, cmd)
}

// Commands returns a copy of everything recorded so far.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Recorder) PlaceOrUpdateMarker(id string, pos model.Position, icon projector.Icon, title string) {
	p := pos
	i := icon
	r.record(Command{Op: OpMarker, ID: id, Position: &p, Icon: &i, Title: title})
}

func (r *Recorder) MoveMarker(id string, pos model.Position) {
	p := pos
	r.record(Command{Op: OpMove, ID: id, Position: &p})
}

func (r *Recorder) SetMarkerVisible(id string, visible bool) {
	v := visible
	r.record(Command{Op: OpVisible, ID: id, Visible: &v})
}

func (r *Recorder) FitBounds(b orb.Bound, pad projector.Padding, panByX int) {
	bounds := Bounds{MinLat: b.Min.Y(), MinLng: b.Min.X(), MaxLat: b.Max.Y(), MaxLng: b.Max.X()}
	p := pad
	r.record(Command{Op: OpFit, Bounds: &bounds, Padding: &p, PanByX: panByX})
}

func (r *Recorder) ShowInfo(id string, info projector.InfoContent) {
	i := info
	r.record(Command{Op: OpInfo, ID: id, Info: &i})
}

func (r *Recorder) SetStatus(status projector.Status) {
	r.record(Command{Op: OpStatus, Status: status})
}

func (r *Recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
