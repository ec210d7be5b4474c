package workspace

import (
	"go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type WorkspaceApi struct {
	WorkspaceController *WorkspaceController
	Config              *config.Config
}

func NewWorkspaceApi(controller *WorkspaceController, cfg *config.Config) api.Route {
	return &WorkspaceApi{
		WorkspaceController: controller,
		Config:              cfg,
	}
}

func (api *WorkspaceApi) Setup(app *fiber.App) {
	group := app.Group("/api/workspace", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.WorkspaceController.Load)
	group.Put("/", api.WorkspaceController.Save)
	group.Get("/last-update", api.WorkspaceController.LastUpdate)
	group.Get("/export", api.WorkspaceController.Export)
	group.Post("/import", api.WorkspaceController.Import)

	group.Post("/pages", api.WorkspaceController.AddPage)
	group.Post("/pages/:id/rename", api.WorkspaceController.RenamePage)
	group.Delete("/pages/:id", api.WorkspaceController.DeletePage)
}
