// Package view hosts one live-map view per connected admin browser:
// snapshot load, delta subscription, position store and projector, torn
// down together when the browser goes away.
package view

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/config"
	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/projector"
	"github.com/Althaf00710/resq-livemap/internal/tracker"
)

// Upstream is the slice of the platform API a session consumes.
type Upstream interface {
	FetchLocations(ctx context.Context) ([]model.LocationUpdate, error)
	SubscribeLocations(ctx context.Context, deliver func(model.LocationUpdate), onState func(connected bool))
}

// ClientMessage is a control message from the browser side of the view.
type ClientMessage struct {
	Type    string `json:"type"`
	Query   string `json:"query,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
	Width   int    `json:"width,omitempty"`
	ID      string `json:"id,omitempty"`
}

// Session owns one view's store and projector. The store is constructed
// on activation and discarded with the session; it is never shared with
// other views.
type Session struct {
	upstream Upstream
	surface  projector.MapSurface
	store    *tracker.Store
	proj     *projector.Projector

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	stalenessInterval time.Duration
}

func NewSession(up Upstream, surface projector.MapSurface) *Session {
	s := &Session{
		upstream:          up,
		surface:           surface,
		stalenessInterval: config.StalenessRefreshInterval,
	}
	s.store = tracker.NewStore(s.onChange)
	s.proj = projector.NewProjector(s.store, surface)
	return s
}

// Start activates the view: the snapshot query runs once, the
// subscription begins delivering deltas, and staleness tints refresh on
// a timer. All three stop when ctx is cancelled or Close is called.
func (s *Session) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	go s.loadSnapshot()
	go s.upstream.SubscribeLocations(s.ctx, s.onDelta, s.onSubscriptionState)
	go s.stalenessLoop()
}

func (s *Session) loadSnapshot() {
	s.surface.SetStatus(projector.StatusLoading)

	ctx, cancel := context.WithTimeout(s.ctx, config.SnapshotTimeout)
	defer cancel()

	rows, err := s.upstream.FetchLocations(ctx)
	if err != nil {
		if s.closed.Load() {
			return
		}
		log.Errorf("Locations snapshot failed: %v", err)
		s.surface.SetStatus(projector.StatusLoadFailed)
		return
	}

	applied := s.store.ApplySnapshot(rows)
	log.Infof("Locations snapshot applied: %d of %d rows", applied, len(rows))
	s.proj.RenderSnapshot()
	s.surface.SetStatus(projector.StatusReady)
}

// RetrySnapshot re-issues the snapshot query after a failure.
func (s *Session) RetrySnapshot() {
	if s.closed.Load() {
		return
	}
	go s.loadSnapshot()
}

func (s *Session) onChange(c tracker.Change) {
	s.proj.HandleChange(c)
}

func (s *Session) onDelta(evt model.LocationUpdate) {
	// A buffered event may still fire after teardown; it must not touch
	// the store.
	if s.closed.Load() {
		return
	}
	s.store.ApplyDelta(evt)
}

func (s *Session) onSubscriptionState(connected bool) {
	if s.closed.Load() {
		return
	}
	if connected {
		s.surface.SetStatus(projector.StatusConnected)
	} else {
		s.surface.SetStatus(projector.StatusReconnecting)
	}
}

func (s *Session) stalenessLoop() {
	ticker := time.NewTicker(s.stalenessInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.proj.RefreshStaleness()
		}
	}
}

// HandleClientMessage dispatches one control message from the browser.
// Unknown types are ignored.
func (s *Session) HandleClientMessage(raw []byte) {
	if s.closed.Load() {
		return
	}
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Debugf("Ignoring unreadable client message: %v", err)
		return
	}
	switch msg.Type {
	case "search":
		s.proj.SetSearch(msg.Query)
	case "autofit":
		s.proj.SetAutoFit(msg.Enabled)
	case "resize":
		s.proj.HandleResize(msg.Width)
	case "info":
		s.proj.ShowVehicleInfo(msg.ID)
	case "retry":
		s.RetrySnapshot()
	}
}

// Store exposes read access for the vehicle list endpoint.
func (s *Session) Store() *tracker.Store {
	return s.store
}

// Close tears the view down: subscription cancelled, animations stopped,
// surface released. Idempotent; anything arriving afterwards is a no-op.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.proj.Close()
}
