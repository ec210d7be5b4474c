package datasource

import (
	"github.com/gofiber/fiber/v2"
)

type DataSourceController struct {
	Service DataSourceService
}

func NewDataSourceController(service DataSourceService) *DataSourceController {
	return &DataSourceController{Service: service}
}

// ResolveURL godoc
// @Summary Fetch and parse a remote data source
// @Description Fetch a URL (Google Sheets links are rewritten to CSV export) and parse it into rows
// @Tags datasource
// @Accept json
// @Produce json
// @Param source body ResolveRequest true "Source"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]interface{}
// @Router /api/data/resolve [post]
func (ctrl *DataSourceController) ResolveURL(c *fiber.Ctx) error {
	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := ctrl.Service.ResolveURL(c.UserContext(), req.URL, req.Format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// ParseText godoc
// @Summary Parse pasted data
// @Description Parse pasted CSV or JSON text into rows
// @Tags datasource
// @Accept json
// @Produce json
// @Success 200 {object} Result
// @Router /api/data/parse-text [post]
func (ctrl *DataSourceController) ParseText(c *fiber.Ctx) error {
	var req struct {
		Text   string `json:"text"`
		Format string `json:"format"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := ctrl.Service.ParseText(c.UserContext(), req.Text, req.Format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// ParseUpload godoc
// @Summary Parse an uploaded file
// @Description Parse an uploaded .csv, .json or .xlsx file into rows
// @Tags datasource
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Data file"
// @Success 200 {object} Result
// @Router /api/data/parse-file [post]
func (ctrl *DataSourceController) ParseUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	result, err := ctrl.Service.ParseUpload(c.UserContext(), fileHeader.Filename, file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// ResolveKPI godoc
// @Summary Compute a KPI value
// @Description Run a KPI descriptor (url or code mode) and return its display value
// @Tags datasource
// @Accept json
// @Produce json
// @Param kpi body KPIRequest true "KPI descriptor"
// @Success 200 {object} map[string]interface{}
// @Router /api/data/kpi [post]
func (ctrl *DataSourceController) ResolveKPI(c *fiber.Ctx) error {
	var req KPIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	value, err := ctrl.Service.ResolveKPI(c.UserContext(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"value": value})
}

// WidgetValue godoc
// @Summary Last refreshed value for a widget
// @Description Return the background refresher's cached payload for a widget
// @Tags datasource
// @Produce json
// @Param widgetId path string true "Widget ID"
// @Success 200 {object} CachedValue
// @Failure 404 {object} map[string]interface{}
// @Router /api/data/widgets/{widgetId}/value [get]
func (ctrl *DataSourceController) WidgetValue(c *fiber.Ctx) error {
	value, ok := ctrl.Service.WidgetValue(c.Params("widgetId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no cached value"})
	}
	return c.JSON(value)
}
