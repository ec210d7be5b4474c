package datasource

import (
	"go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DataSourceApi struct {
	DataSourceController *DataSourceController
	Config               *config.Config
}

func NewDataSourceApi(controller *DataSourceController, cfg *config.Config) api.Route {
	return &DataSourceApi{
		DataSourceController: controller,
		Config:               cfg,
	}
}

func (api *DataSourceApi) Setup(app *fiber.App) {
	group := app.Group("/api/data", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/resolve", api.DataSourceController.ResolveURL)
	group.Post("/parse-text", api.DataSourceController.ParseText)
	group.Post("/parse-file", api.DataSourceController.ParseUpload)
	group.Post("/kpi", api.DataSourceController.ResolveKPI)
	group.Get("/widgets/:widgetId/value", api.DataSourceController.WidgetValue)
}
