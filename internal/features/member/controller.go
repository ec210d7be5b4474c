package member

import (
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MemberController struct {
	Service MemberService
}

func NewMemberController(service MemberService) *MemberController {
	return &MemberController{Service: service}
}

// InviteMember godoc
// @Summary Invite a member
// @Description Share a dashboard with another account by email
// @Tags member
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param invite body InviteRequest true "Invite"
// @Success 201 {object} Member
// @Router /api/dashboards/{id}/members [post]
func (ctrl *MemberController) InviteMember(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Role == "" {
		req.Role = RoleViewer
	}

	member, err := ctrl.Service.Invite(c.UserContext(), c.Params("id"), claims.UserID, req.Email, req.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

// ListMembers godoc
// @Summary List members
// @Tags member
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {array} Member
// @Router /api/dashboards/{id}/members [get]
func (ctrl *MemberController) ListMembers(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	members, err := ctrl.Service.List(c.UserContext(), c.Params("id"), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(members)
}

// UpdateMemberRole godoc
// @Summary Change a member role
// @Tags member
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param userId path string true "User ID"
// @Param role body UpdateRoleRequest true "Role"
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboards/{id}/members/{userId} [patch]
func (ctrl *MemberController) UpdateMemberRole(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.Service.UpdateRole(c.UserContext(), c.Params("id"), claims.UserID, c.Params("userId"), req.Role); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Role updated"})
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags member
// @Param id path string true "Dashboard ID"
// @Param userId path string true "User ID"
// @Success 204 {object} nil
// @Router /api/dashboards/{id}/members/{userId} [delete]
func (ctrl *MemberController) RemoveMember(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.Service.Remove(c.UserContext(), c.Params("id"), claims.UserID, c.Params("userId")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
