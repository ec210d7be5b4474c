package audit

import (
	"go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
}

func NewAuditApi(controller *AuditController, cfg *config.Config) api.Route {
	return &AuditApi{
		controller: controller,
		config:     cfg,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	audit := app.Group("/api/audit-logs", middleware.AuthMiddleware(h.config.SkipAuth))

	audit.Get("/", h.controller.ListLogs)
}
