package dashboard

import (
	"go-dashboards/internal/features/widget"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	DashboardService DashboardService
}

func NewDashboardController(dashboardService DashboardService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
	}
}

func userID(c *fiber.Ctx) (string, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return claims.UserID, nil
}

// CreateDashboard godoc
// @Summary Create dashboard
// @Description Create a new dashboard page
// @Tags dashboard
// @Accept json
// @Produce json
// @Param dashboard body CreateDashboardRequest true "Dashboard"
// @Success 201 {object} StoredDashboard
// @Failure 400 {object} map[string]interface{}
// @Router /api/dashboards [post]
func (ctrl *DashboardController) CreateDashboard(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req CreateDashboardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := ctrl.DashboardService.CreateDashboard(ctx.UserContext(), uid, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(d)
}

// ListDashboards godoc
// @Summary List dashboards
// @Description List dashboards the current user owns or was invited to
// @Tags dashboard
// @Produce json
// @Success 200 {array} StoredDashboard
// @Router /api/dashboards [get]
func (ctrl *DashboardController) ListDashboards(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	dashboards, err := ctrl.DashboardService.ListDashboards(ctx.UserContext(), uid)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(dashboards)
}

// GetDashboard godoc
// @Summary Get dashboard
// @Tags dashboard
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {object} StoredDashboard
// @Failure 404 {object} map[string]interface{}
// @Router /api/dashboards/{id} [get]
func (ctrl *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	d, err := ctrl.DashboardService.GetDashboard(ctx.UserContext(), ctx.Params("id"), uid)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(d)
}

// SaveDashboard godoc
// @Summary Save dashboard
// @Description Replace the page's full widget list
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param dashboard body Dashboard true "Page data"
// @Success 200 {object} StoredDashboard
// @Router /api/dashboards/{id} [put]
func (ctrl *DashboardController) SaveDashboard(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var data Dashboard
	if err := ctx.BodyParser(&data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := ctrl.DashboardService.SaveDashboard(ctx.UserContext(), ctx.Params("id"), uid, data)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(d)
}

// RenameDashboard godoc
// @Summary Rename dashboard
// @Tags dashboard
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param name body RenameRequest true "New name"
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboards/{id}/rename [post]
func (ctrl *DashboardController) RenameDashboard(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req RenameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.DashboardService.RenameDashboard(ctx.UserContext(), ctx.Params("id"), uid, req.Name); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Dashboard renamed"})
}

// DeleteDashboard godoc
// @Summary Delete dashboard
// @Tags dashboard
// @Param id path string true "Dashboard ID"
// @Success 204 {object} nil
// @Router /api/dashboards/{id} [delete]
func (ctrl *DashboardController) DeleteDashboard(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	if err := ctrl.DashboardService.DeleteDashboard(ctx.UserContext(), ctx.Params("id"), uid); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// PublishDashboard godoc
// @Summary Toggle public sharing
// @Description Make a dashboard reachable (or not) through a public slug
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param publish body PublishRequest true "Public flag"
// @Success 200 {object} StoredDashboard
// @Router /api/dashboards/{id}/publish [post]
func (ctrl *DashboardController) PublishDashboard(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req PublishRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := ctrl.DashboardService.Publish(ctx.UserContext(), ctx.Params("id"), uid, req.Public)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(d)
}

// GetPublicDashboard godoc
// @Summary Get a published dashboard
// @Description Fetch a dashboard by its public slug, no auth required
// @Tags dashboard
// @Produce json
// @Param slug path string true "Public slug"
// @Success 200 {object} StoredDashboard
// @Failure 404 {object} map[string]interface{}
// @Router /api/public/dashboards/{slug} [get]
func (ctrl *DashboardController) GetPublicDashboard(ctx *fiber.Ctx) error {
	d, err := ctrl.DashboardService.GetPublicDashboard(ctx.UserContext(), ctx.Params("slug"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(d)
}

// AddWidget godoc
// @Summary Add widget
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param widget body widget.Widget true "Widget"
// @Success 201 {object} widget.Widget
// @Router /api/dashboards/{id}/widgets [post]
func (ctrl *DashboardController) AddWidget(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var w widget.Widget
	if err := ctx.BodyParser(&w); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	added, err := ctrl.DashboardService.AddWidget(ctx.UserContext(), ctx.Params("id"), uid, w)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(added)
}

// UpdateWidget godoc
// @Summary Update widget
// @Tags dashboard
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param widgetId path string true "Widget ID"
// @Param widget body widget.Widget true "Widget"
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboards/{id}/widgets/{widgetId} [put]
func (ctrl *DashboardController) UpdateWidget(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var w widget.Widget
	if err := ctx.BodyParser(&w); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	w.ID = ctx.Params("widgetId")

	if err := ctrl.DashboardService.UpdateWidget(ctx.UserContext(), ctx.Params("id"), uid, w); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Widget updated"})
}

// DuplicateWidget godoc
// @Summary Duplicate widget
// @Tags dashboard
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param widgetId path string true "Widget ID"
// @Success 201 {object} widget.Widget
// @Router /api/dashboards/{id}/widgets/{widgetId}/duplicate [post]
func (ctrl *DashboardController) DuplicateWidget(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	dup, err := ctrl.DashboardService.DuplicateWidget(ctx.UserContext(), ctx.Params("id"), uid, ctx.Params("widgetId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(dup)
}

// DeleteWidget godoc
// @Summary Delete widget
// @Tags dashboard
// @Param id path string true "Dashboard ID"
// @Param widgetId path string true "Widget ID"
// @Success 204 {object} nil
// @Router /api/dashboards/{id}/widgets/{widgetId} [delete]
func (ctrl *DashboardController) DeleteWidget(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	if err := ctrl.DashboardService.DeleteWidget(ctx.UserContext(), ctx.Params("id"), uid, ctx.Params("widgetId")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// MoveWidget godoc
// @Summary Move widget
// @Description Shift a widget one slot up, down, left or right
// @Tags dashboard
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param widgetId path string true "Widget ID"
// @Param move body MoveWidgetRequest true "Direction"
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboards/{id}/widgets/{widgetId}/move [post]
func (ctrl *DashboardController) MoveWidget(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req MoveWidgetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.DashboardService.MoveWidget(ctx.UserContext(), ctx.Params("id"), uid, ctx.Params("widgetId"), req.Direction); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Widget moved"})
}

// ResizeWidget godoc
// @Summary Resize widget
// @Tags dashboard
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param widgetId path string true "Widget ID"
// @Param size body ResizeWidgetRequest true "Size"
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboards/{id}/widgets/{widgetId}/resize [post]
func (ctrl *DashboardController) ResizeWidget(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req ResizeWidgetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.DashboardService.ResizeWidget(ctx.UserContext(), ctx.Params("id"), uid, ctx.Params("widgetId"), req.Width, req.Height); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Widget resized"})
}

// ReorderWidget godoc
// @Summary Reorder widget
// @Description Drop a widget before or after another widget
// @Tags dashboard
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param widgetId path string true "Widget ID"
// @Param reorder body ReorderWidgetRequest true "Target"
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboards/{id}/widgets/{widgetId}/reorder [post]
func (ctrl *DashboardController) ReorderWidget(ctx *fiber.Ctx) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req ReorderWidgetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.DashboardService.ReorderWidget(ctx.UserContext(), ctx.Params("id"), uid, ctx.Params("widgetId"), req.TargetID, req.Before); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Widget reordered"})
}
