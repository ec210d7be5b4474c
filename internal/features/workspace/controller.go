package workspace

import (
	"io"

	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type WorkspaceController struct {
	Service WorkspaceService
}

func NewWorkspaceController(service WorkspaceService) *WorkspaceController {
	return &WorkspaceController{Service: service}
}

func userID(c *fiber.Ctx) (string, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return claims.UserID, nil
}

// Load godoc
// @Summary Load workspace
// @Description Restore the user's pages via store, mirror or presets. ?d=<id> or ?p=<slug> deep-links one shared page instead.
// @Tags workspace
// @Produce json
// @Param d query string false "Shared dashboard id"
// @Param p query string false "Public dashboard slug"
// @Success 200 {object} LoadResult
// @Router /api/workspace [get]
func (ctrl *WorkspaceController) Load(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if d, p := c.Query("d"), c.Query("p"); d != "" || p != "" {
		result, err := ctrl.Service.LoadShared(c.UserContext(), uid, d, p)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(result)
	}

	result, err := ctrl.Service.Load(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// Save godoc
// @Summary Save workspace
// @Description Write-through save of the full pages array
// @Tags workspace
// @Accept json
// @Produce json
// @Param dashboards body []dashboard.Dashboard true "Pages"
// @Success 200 {object} SaveResult
// @Router /api/workspace [put]
func (ctrl *WorkspaceController) Save(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var dashboards []dashboard.Dashboard
	if err := c.BodyParser(&dashboards); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := ctrl.Service.Save(c.UserContext(), uid, dashboards)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// LastUpdate godoc
// @Summary Poll for changes
// @Description Cheap endpoint pollers hit to learn whether another session saved
// @Tags workspace
// @Produce json
// @Success 200 {object} LastUpdateInfo
// @Failure 404 {object} map[string]interface{}
// @Router /api/workspace/last-update [get]
func (ctrl *WorkspaceController) LastUpdate(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	info, err := ctrl.Service.LastUpdate(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(info)
}

// Export godoc
// @Summary Export workspace
// @Description Download all pages as pretty-printed JSON
// @Tags workspace
// @Produce json
// @Success 200 {array} dashboard.Dashboard
// @Router /api/workspace/export [get]
func (ctrl *WorkspaceController) Export(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	payload, err := ctrl.Service.Export(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="dashboards.json"`)
	return c.Send(payload)
}

// Import godoc
// @Summary Import workspace
// @Description Replace all pages with an uploaded dashboards.json
// @Tags workspace
// @Accept json
// @Produce json
// @Success 200 {object} SaveResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/workspace/import [post]
func (ctrl *WorkspaceController) Import(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	payload := c.Body()
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		defer file.Close()

		buf, err := io.ReadAll(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		payload = buf
	}

	result, err := ctrl.Service.Import(c.UserContext(), uid, payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// AddPage godoc
// @Summary Add a page
// @Description Append an empty page named "Dashboard N"
// @Tags workspace
// @Produce json
// @Success 201 {object} AddPageResponse
// @Router /api/workspace/pages [post]
func (ctrl *WorkspaceController) AddPage(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	resp, err := ctrl.Service.AddPage(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RenamePage godoc
// @Summary Rename a page
// @Tags workspace
// @Accept json
// @Param id path string true "Page ID"
// @Param name body dashboard.RenameRequest true "New name"
// @Success 200 {object} map[string]interface{}
// @Router /api/workspace/pages/{id}/rename [post]
func (ctrl *WorkspaceController) RenamePage(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req dashboard.RenameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.Service.RenamePage(c.UserContext(), uid, c.Params("id"), req.Name); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Page renamed"})
}

// DeletePage godoc
// @Summary Delete a page
// @Description Remove a page and report which page becomes active
// @Tags workspace
// @Produce json
// @Param id path string true "Page ID"
// @Param active query string false "Currently active page"
// @Success 200 {object} DeletePageResponse
// @Router /api/workspace/pages/{id} [delete]
func (ctrl *WorkspaceController) DeletePage(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	resp, err := ctrl.Service.DeletePage(c.UserContext(), uid, c.Params("id"), c.Query("active"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}
