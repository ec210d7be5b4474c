package profile

import (
	"go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProfileApi struct {
	ProfileController *ProfileController
	Config            *config.Config
}

func NewProfileApi(profileController *ProfileController, cfg *config.Config) api.Route {
	return &ProfileApi{
		ProfileController: profileController,
		Config:            cfg,
	}
}

func (api *ProfileApi) Setup(app *fiber.App) {
	group := app.Group("/api/profile", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.ProfileController.GetMe)
	group.Put("/", api.ProfileController.UpdateMe)
}
