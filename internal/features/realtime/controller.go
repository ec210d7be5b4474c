package realtime

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub    *Hub
	Logger *zap.Logger
}

func NewWebSocketController(hub *Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{Hub: hub, Logger: logger}
}

// HandleWorkspace streams the caller's own workspace events. The topic is
// the authenticated user id, stashed in locals before the upgrade.
func (h *WebSocketController) HandleWorkspace(c *websocket.Conn) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		_ = c.Close()
		return
	}
	h.serve(c, userID)
}

// HandleDashboard streams events for one shared dashboard page.
func (h *WebSocketController) HandleDashboard(c *websocket.Conn) {
	dashboardID := c.Params("id")
	if dashboardID == "" {
		_ = c.Close()
		return
	}
	h.serve(c, dashboardID)
}

func (h *WebSocketController) serve(c *websocket.Conn, topic string) {
	sub := h.Hub.Subscribe(topic)
	defer h.Hub.Unsubscribe(sub)

	// Drain the read side so close frames are seen; clients only listen.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			body, err := json.Marshal(event)
			if err != nil {
				h.Logger.Warn("failed to encode realtime event", zap.Error(err))
				continue
			}
			if err := c.WriteMessage(websocket.TextMessage, body); err != nil {
				h.Logger.Debug("realtime write failed, dropping connection",
					zap.String("topic", topic), zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
