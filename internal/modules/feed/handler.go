package feed

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"travelagency/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin is enforced by the CORS layer and the JWT handshake.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Connect handles GET /api/v1/admin/feed (websocket upgrade). Auth
// middleware has already placed admin_id in the context.
func (h *Handler) Connect(c *gin.Context) {
	adminID := c.GetInt64("admin_id")
	if adminID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed: websocket upgrade failed for admin %d: %v", adminID, err)
		return
	}

	h.hub.Register(adminID, conn)
	log.Printf("feed: admin %d connected (%d online)", adminID, h.hub.OnlineCount())

	// The feed is one-way; the read loop only detects the close.
	go func() {
		defer func() {
			h.hub.Unregister(adminID)
			log.Printf("feed: admin %d disconnected", adminID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
