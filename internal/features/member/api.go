package member

import (
	"go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MemberApi struct {
	MemberController *MemberController
	Config           *config.Config
}

func NewMemberApi(memberController *MemberController, cfg *config.Config) api.Route {
	return &MemberApi{
		MemberController: memberController,
		Config:           cfg,
	}
}

func (api *MemberApi) Setup(app *fiber.App) {
	group := app.Group("/api/dashboards/:id/members", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.MemberController.InviteMember)
	group.Get("/", api.MemberController.ListMembers)
	group.Patch("/:userId", api.MemberController.UpdateMemberRole)
	group.Delete("/:userId", api.MemberController.RemoveMember)
}
