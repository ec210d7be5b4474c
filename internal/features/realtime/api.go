package realtime

import (
	"go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WebSocketApi struct {
	Controller *WebSocketController
	Config     *config.Config
}

func NewWebSocketApi(controller *WebSocketController, cfg *config.Config) api.Route {
	return &WebSocketApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *WebSocketApi) Setup(app *fiber.App) {
	// Browsers cannot set headers on websocket upgrades, so the token rides
	// in the query string instead of Authorization.
	app.Use("/api/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if h.Config.SkipAuth {
			c.Locals("user_id", "00000000-0000-0000-0000-000000000001")
			return c.Next()
		}

		claims, err := utils.ValidateToken(c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}
		c.Locals("user_id", claims.UserID)
		return c.Next()
	})

	app.Get("/api/ws/workspace", websocket.New(h.Controller.HandleWorkspace))
	app.Get("/api/ws/dashboards/:id", websocket.New(h.Controller.HandleDashboard))
}
