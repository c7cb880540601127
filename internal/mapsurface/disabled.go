package mapsurface

import (
	"github.com/paulmach/orb"

	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/projector"
)

// Disabled is the no-map surface: every command is dropped. Used when the
// browser reports that the map provider failed to load, and for the
// background session that only feeds the vehicle list endpoint.
type Disabled struct{}

func NewDisabled() Disabled { return Disabled{} }

func (Disabled) PlaceOrUpdateMarker(string, model.Position, projector.Icon, string) {}
func (Disabled) MoveMarker(string, model.Position)                                  {}
func (Disabled) SetMarkerVisible(string, bool)                                      {}
func (Disabled) FitBounds(orb.Bound, projector.Padding, int)                        {}
func (Disabled) ShowInfo(string, projector.InfoContent)                             {}
func (Disabled) SetStatus(projector.Status)                                         {}
func (Disabled) Close()                                                             {}
