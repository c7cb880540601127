// Package tracker maintains the set of currently known vehicle positions
// for a single live-map view.
package tracker

import (
	"sync"
	"time"

	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/service/storage"
)

// Change describes one applied position update, handed to the change
// listener after the store has been mutated.
type Change struct {
	Vehicle model.TrackedVehicle
	Created bool
}

// Store is the position store for one view. Each view constructs its own
// instance on activation and discards it on teardown; it is never shared
// between views.
//
// Merge policy is last-write-wins on vehicle id: whichever update is
// applied last fully replaces position, metadata and timestamp. Entities
// are never removed implicitly; vehicles that stop reporting merely age
// into staleness.
type Store struct {
	mu       sync.Mutex
	storage  *storage.MemoryStorage[string, *model.TrackedVehicle]
	onChange func(Change)
	now      func() time.Time
}

// NewStore creates an empty store. onChange may be nil; when set it is
// invoked synchronously for every applied delta.
func NewStore(onChange func(Change)) *Store {
	return &Store{
		storage:  storage.NewMemoryStorage[string, *model.TrackedVehicle](),
		onChange: onChange,
		now:      time.Now,
	}
}

// ApplySnapshot upserts every row of the initial locations query. Rows
// with a missing id or non-finite coordinates are skipped. Returns the
// number of rows applied. Snapshot rows do not fire change notifications;
// the caller renders the whole store once the snapshot is in.
func (s *Store) ApplySnapshot(rows []model.LocationUpdate) int {
	applied := 0
	for _, row := range rows {
		if s.apply(row, row.LastActive, nil) {
			applied++
		}
	}
	return applied
}

// ApplyDelta upserts a single subscription event. A delta for an unknown
// id creates the entity; a delta for a known id replaces its position,
// metadata and timestamp, retaining the previous position transiently for
// interpolation. An event without a timestamp counts as seen now.
// Malformed events are dropped and reported false.
func (s *Store) ApplyDelta(evt model.LocationUpdate) bool {
	last := evt.LastActive
	if last == nil {
		n := s.now()
		last = &n
	}
	return s.apply(evt, last, s.onChange)
}

func (s *Store) apply(u model.LocationUpdate, lastActive *time.Time, notify func(Change)) bool {
	if u.VehicleID == "" || !u.Position.Valid() {
		return false
	}

	s.mu.Lock()
	existing, exists := s.storage.Get(u.VehicleID)

	v := &model.TrackedVehicle{
		ID:           u.VehicleID,
		Position:     u.Position,
		Meta:         u.Meta,
		Active:       u.Active,
		Address:      u.Address,
		LastActiveAt: lastActive,
	}
	if exists && existing.Position != u.Position {
		prev := existing.Position
		v.PrevPosition = &prev
	}
	s.storage.Set(u.VehicleID, v)
	change := Change{Vehicle: copyVehicle(v), Created: !exists}
	s.mu.Unlock()

	if notify != nil {
		notify(change)
	}
	return true
}

// Get returns a copy of the tracked vehicle for id.
func (s *Store) Get(id string) (model.TrackedVehicle, bool) {
	v, ok := s.storage.Get(id)
	if !ok {
		return model.TrackedVehicle{}, false
	}
	return copyVehicle(v), true
}

// All returns copies of every tracked vehicle, in unspecified order.
func (s *Store) All() []model.TrackedVehicle {
	values := s.storage.GetAllValues()
	out := make([]model.TrackedVehicle, 0, len(values))
	for _, v := range values {
		out = append(out, copyVehicle(v))
	}
	return out
}

// Count returns the number of tracked vehicles.
func (s *Store) Count() int {
	return s.storage.Count()
}

func copyVehicle(v *model.TrackedVehicle) model.TrackedVehicle {
	out := *v
	if v.PrevPosition != nil {
		prev := *v.PrevPosition
		out.PrevPosition = &prev
	}
	if v.LastActiveAt != nil {
		last := *v.LastActiveAt
		out.LastActiveAt = &last
	}
	return out
}
