package auth

import (
	"go-dashboards/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	AuthController *AuthController
}

func NewAuthApi(authController *AuthController) api.Route {
	return &AuthApi{
		AuthController: authController,
	}
}

func (api *AuthApi) Setup(app *fiber.App) {
	app.Post("/api/register", api.AuthController.Register)
	app.Post("/api/login", api.AuthController.Login)
}
