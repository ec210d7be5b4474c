package profile

import (
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Service ProfileService
}

func NewProfileController(service ProfileService) *ProfileController {
	return &ProfileController{Service: service}
}

// GetMe godoc
// @Summary Get current profile
// @Tags profile
// @Produce json
// @Success 200 {object} Profile
// @Router /api/profile [get]
func (ctrl *ProfileController) GetMe(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	p, err := ctrl.Service.GetProfile(c.UserContext(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(p)
}

// UpdateMe godoc
// @Summary Update current profile
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} Profile
// @Router /api/profile [put]
func (ctrl *ProfileController) UpdateMe(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	p, err := ctrl.Service.UpdateProfile(c.UserContext(), claims.UserID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(p)
}
