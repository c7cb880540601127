package projector

import (
	"github.com/paulmach/orb"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

// Icon describes a marker glyph placed on the map surface.
type Icon struct {
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	AnchorX int    `json:"anchorX"`
	AnchorY int    `json:"anchorY"`
}

// Padding reserves pixels around a bounds fit.
type Padding struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// InfoContent is the payload of a marker info popup.
type InfoContent struct {
	Title      string `json:"title"`
	IconName   string `json:"iconName,omitempty"`
	LastActive string `json:"lastActive"`
}

// Status is a coarse connectivity/loading state shown quietly in the view.
type Status string

const (
	StatusLoading      Status = "loading"
	StatusReady        Status = "ready"
	StatusLoadFailed   Status = "load_failed"
	StatusConnected    Status = "connected"
	StatusReconnecting Status = "reconnecting"
)

// MapSurface is the drawing side of the view: place a marker at a
// position with a given icon and title, glide it, toggle it, fit the
// viewport, pop an info window. Implementations must tolerate calls
// after Close and turn them into no-ops.
type MapSurface interface {
	PlaceOrUpdateMarker(id string, pos model.Position, icon Icon, title string)
	MoveMarker(id string, pos model.Position)
	SetMarkerVisible(id string, visible bool)
	FitBounds(b orb.Bound, pad Padding, panByX int)
	ShowInfo(id string, info InfoContent)
	SetStatus(s Status)
	Close()
}
