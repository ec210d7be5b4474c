package dashboard

import (
	"go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	DashboardController *DashboardController
	Config              *config.Config
}

func NewDashboardApi(dashboardController *DashboardController, cfg *config.Config) api.Route {
	return &DashboardApi{
		DashboardController: dashboardController,
		Config:              cfg,
	}
}

func (api *DashboardApi) Setup(app *fiber.App) {
	// Public slug endpoint stays outside the auth group.
	app.Get("/api/public/dashboards/:slug", api.DashboardController.GetPublicDashboard)

	group := app.Group("/api/dashboards", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.DashboardController.CreateDashboard)
	group.Get("/", api.DashboardController.ListDashboards)
	group.Get("/:id", api.DashboardController.GetDashboard)
	group.Put("/:id", api.DashboardController.SaveDashboard)
	group.Delete("/:id", api.DashboardController.DeleteDashboard)

	group.Post("/:id/rename", api.DashboardController.RenameDashboard)
	group.Post("/:id/publish", api.DashboardController.PublishDashboard)

	group.Post("/:id/widgets", api.DashboardController.AddWidget)
	group.Put("/:id/widgets/:widgetId", api.DashboardController.UpdateWidget)
	group.Delete("/:id/widgets/:widgetId", api.DashboardController.DeleteWidget)
	group.Post("/:id/widgets/:widgetId/duplicate", api.DashboardController.DuplicateWidget)
	group.Post("/:id/widgets/:widgetId/move", api.DashboardController.MoveWidget)
	group.Post("/:id/widgets/:widgetId/resize", api.DashboardController.ResizeWidget)
	group.Post("/:id/widgets/:widgetId/reorder", api.DashboardController.ReorderWidget)
}
