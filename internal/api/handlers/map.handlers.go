package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/mapsurface"
	"github.com/Althaf00710/resq-livemap/internal/view"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetupMapHandlers registers the live-map websocket endpoint. Each
// connection hosts its own view session with its own position store.
func SetupMapHandlers(router *gin.RouterGroup, up view.Upstream) {
	router.GET("/map", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warnf("Map websocket upgrade failed: %v", err)
			return
		}

		surface := mapsurface.NewWSSurface(conn)
		session := view.NewSession(up, surface)
		session.Start(c.Request.Context())

		defer func() {
			session.Close()
			conn.Close()
		}()

		// Read pump: control messages until the browser goes away.
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			session.HandleClientMessage(raw)
		}
	})
}
