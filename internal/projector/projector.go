// Package projector maps position-store state to marker operations on a
// MapSurface: icon selection, staleness tinting, smooth interpolation and
// viewport fitting. It holds no position state of its own beyond what is
// needed to drive animations.
package projector

import (
	"sync"
	"time"

	"github.com/paulmach/orb"

	"github.com/Althaf00710/resq-livemap/internal/config"
	"github.com/Althaf00710/resq-livemap/internal/filter"
	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/tracker"
)

const defaultViewportWidth = 1280

// lg breakpoint: above it the dashboard overlay covers the right half of
// the viewport, below it only a narrow strip.
const (
	wideBreakpoint    = 1024
	wideRightReserve  = 0.5
	narrowRightReserve = 0.22
	fitEdgePadding    = 32
	panNudgeFraction  = 0.06
)

// Projector renders one view's position store onto one map surface.
type Projector struct {
	store   *tracker.Store
	surface MapSurface

	mu            sync.Mutex
	search        string
	autoFit       bool
	viewportWidth int
	displayed     map[string]model.Position
	lastStale     map[string]bool
	anims         map[string]chan struct{}
	closed        bool

	// test hooks
	frameInterval time.Duration
	frames        int
	now           func() time.Time
}

// NewProjector binds a store to a surface. Auto-fit starts enabled, as in
// the admin console.
func NewProjector(store *tracker.Store, surface MapSurface) *Projector {
	return &Projector{
		store:         store,
		surface:       surface,
		autoFit:       true,
		viewportWidth: defaultViewportWidth,
		displayed:     make(map[string]model.Position),
		lastStale:     make(map[string]bool),
		anims:         make(map[string]chan struct{}),
		frameInterval: config.FrameInterval,
		frames:        config.InterpolationFrames,
		now:           time.Now,
	}
}

// HandleChange applies one store change to the surface. New vehicles
// appear in place; known vehicles keep their icon refreshed immediately
// and glide toward the new position. A newer target supersedes any
// animation still in flight, so back-to-back deltas never flicker
// through the intermediate position.
func (p *Projector) HandleChange(c tracker.Change) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	v := c.Vehicle
	p.renderLocked(v, !c.Created)
}

// renderLocked places or animates one vehicle. Callers hold p.mu.
func (p *Projector) renderLocked(v model.TrackedVehicle, animate bool) {
	stale := tracker.IsStale(v.LastActiveAt, p.now())
	icon := IconFor(v.Meta, stale)
	title := v.Meta.Title()

	from, known := p.displayed[v.ID]
	if !known || !animate {
		p.surface.PlaceOrUpdateMarker(v.ID, v.Position, icon, title)
		p.displayed[v.ID] = v.Position
	} else {
		// Refresh icon and title at the currently shown position, then
		// glide to the target.
		p.surface.PlaceOrUpdateMarker(v.ID, from, icon, title)
		p.animateLocked(v.ID, from, v.Position)
	}
	p.lastStale[v.ID] = stale
	p.surface.SetMarkerVisible(v.ID, filter.Matches(p.search, v.Meta))
}

// animateLocked starts (or, with a non-positive frame interval, plays
// synchronously) the interpolation toward target, cancelling any
// animation already running for the marker.
func (p *Projector) animateLocked(id string, from, to model.Position) {
	if cancel, ok := p.anims[id]; ok {
		close(cancel)
		delete(p.anims, id)
	}
	path := InterpolatePath(from, to, p.frames)

	if p.frameInterval <= 0 {
		for _, pos := range path {
			p.surface.MoveMarker(id, pos)
			p.displayed[id] = pos
		}
		return
	}

	cancel := make(chan struct{})
	p.anims[id] = cancel
	go func() {
		ticker := time.NewTicker(p.frameInterval)
		defer ticker.Stop()
		for _, pos := range path {
			select {
			case <-cancel:
				return
			case <-ticker.C:
			}
			p.mu.Lock()
			if p.closed {
				p.mu.Unlock()
				return
			}
			select {
			case <-cancel:
				p.mu.Unlock()
				return
			default:
			}
			p.surface.MoveMarker(id, pos)
			p.displayed[id] = pos
			p.mu.Unlock()
		}
		p.mu.Lock()
		if p.anims[id] == cancel {
			delete(p.anims, id)
		}
		p.mu.Unlock()
	}()
}

// RenderSnapshot draws every tracked vehicle and, when auto-fit is on,
// fits the viewport around them.
func (p *Projector) RenderSnapshot() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	for _, v := range p.store.All() {
		p.renderLocked(v, false)
	}
	autoFit := p.autoFit
	p.mu.Unlock()

	if autoFit {
		p.FitViewport()
	}
}

// SetSearch updates the free-text filter and re-evaluates marker
// visibility. Store contents are untouched.
func (p *Projector) SetSearch(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.search = query
	for _, v := range p.store.All() {
		p.surface.SetMarkerVisible(v.ID, filter.Matches(query, v.Meta))
	}
}

// SetAutoFit toggles auto-fit mode. Enabling it fits immediately;
// disabling it leaves the user's pan/zoom alone.
func (p *Projector) SetAutoFit(on bool) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.autoFit = on
	p.mu.Unlock()

	if on {
		p.FitViewport()
	}
}

// HandleResize records the new viewport width and refits while auto-fit
// is enabled.
func (p *Projector) HandleResize(width int) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if width > 0 {
		p.viewportWidth = width
	}
	autoFit := p.autoFit
	p.mu.Unlock()

	if autoFit {
		p.FitViewport()
	}
}

// FitViewport computes the bound of all visible markers and asks the
// surface to fit it, reserving extra space on the right for the
// dashboard overlay and nudging the focus slightly left.
func (p *Projector) FitViewport() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	var mp orb.MultiPoint
	for _, v := range p.store.All() {
		if filter.Matches(p.search, v.Meta) {
			mp = append(mp, orb.Point{v.Position.Longitude, v.Position.Latitude})
		}
	}
	if len(mp) == 0 {
		return
	}

	w := p.viewportWidth
	reserve := narrowRightReserve
	if w >= wideBreakpoint {
		reserve = wideRightReserve
	}
	pad := Padding{
		Top:    fitEdgePadding,
		Right:  int(float64(w)*reserve) + fitEdgePadding,
		Bottom: fitEdgePadding,
		Left:   fitEdgePadding,
	}
	panByX := -int(float64(w) * panNudgeFraction)

	p.surface.FitBounds(mp.Bound(), pad, panByX)
}

// ShowVehicleInfo opens the info popup for a marker, using the same
// staleness computation as the icon tint.
func (p *Projector) ShowVehicleInfo(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	v, ok := p.store.Get(id)
	if !ok {
		return
	}
	info := InfoContent{
		Title:      v.Meta.Title(),
		LastActive: tracker.RelativeAge(v.LastActiveAt, p.now()),
	}
	if name, ok := v.Meta.FirstIcon(); ok {
		info.IconName = name
	}
	p.surface.ShowInfo(id, info)
}

// RefreshStaleness re-evaluates every marker's tint so vehicles grey out
// from the passage of time alone, without requiring another event.
func (p *Projector) RefreshStaleness() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	now := p.now()
	for _, v := range p.store.All() {
		stale := tracker.IsStale(v.LastActiveAt, now)
		if was, seen := p.lastStale[v.ID]; seen && was == stale {
			continue
		}
		pos, ok := p.displayed[v.ID]
		if !ok {
			pos = v.Position
		}
		p.surface.PlaceOrUpdateMarker(v.ID, pos, IconFor(v.Meta, stale), v.Meta.Title())
		p.lastStale[v.ID] = stale
	}
}

// Close cancels pending animations and releases the surface. Further
// calls on the projector become no-ops.
func (p *Projector) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for id, cancel := range p.anims {
		close(cancel)
		delete(p.anims, id)
	}
	p.mu.Unlock()

	p.surface.Close()
}
