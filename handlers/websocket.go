package handlers

import (
	"net/http"

	"energy-monitor/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler upgrades dashboard clients onto the live reading feed.
type WSHandler struct {
	mgr *ws.Manager
	log *zap.Logger
}

func NewWSHandler(mgr *ws.Manager, logger *zap.Logger) *WSHandler {
	return &WSHandler{mgr: mgr, log: logger}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleDashboardWS upgrades to websocket and streams reading events until
// the client disconnects. The feed is one-way; inbound messages are drained
// and discarded so pings and close frames are processed.
// GET /ws
func (h *WSHandler) HandleDashboardWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	clientID := uuid.New().String()
	h.mgr.Register(clientID, conn)
	h.log.Info("dashboard connected", zap.String("client_id", clientID))

	defer func() {
		h.mgr.Unregister(clientID)
		h.log.Info("dashboard disconnected", zap.String("client_id", clientID))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("read error", zap.String("client_id", clientID), zap.Error(err))
			}
			return
		}
	}
}

// GetConnectedClients GET /api/dashboards/connected
func (h *WSHandler) GetConnectedClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": h.mgr.List(), "count": h.mgr.Count()})
}
