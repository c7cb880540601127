package api

import (
	"github.com/gin-gonic/gin"

	routes "github.com/Althaf00710/resq-livemap/internal/api/handlers"
	"github.com/Althaf00710/resq-livemap/internal/tracker"
	"github.com/Althaf00710/resq-livemap/internal/view"
)

// Deps carries what the handlers need: the platform API client used to
// build one session per map connection, and the background session's
// store backing the vehicle list endpoint.
type Deps struct {
	Upstream  view.Upstream
	ListStore *tracker.Store
}

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, deps Deps) {
	routes.SetupMainHandlers(r.Group(""))

	api := r.Group("/api")
	routes.SetupVehicleHandlers(api, deps.ListStore)

	routes.SetupMapHandlers(r.Group("/ws"), deps.Upstream)
}
