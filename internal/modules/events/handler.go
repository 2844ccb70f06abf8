package events

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moffatbay/internal/pkg/response"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes mounts the desk feed; the group must already enforce staff
// auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/desk/feed", h.Feed)
}

// Feed upgrades the request to a websocket streaming reservation events.
func (h *Handler) Feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UPGRADE_FAILED", "WebSocket upgrade failed")
		return
	}
	h.hub.ServeWS(conn, c.GetInt64("user_id"))
}
