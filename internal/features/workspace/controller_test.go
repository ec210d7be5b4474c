package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type captureService struct {
	WorkspaceService
	imported []byte
}

func (c *captureService) Import(ctx context.Context, userID string, payload []byte) (*SaveResult, error) {
	c.imported = append([]byte(nil), payload...)

	var dashboards []dashboard.Dashboard
	if err := json.Unmarshal(payload, &dashboards); err != nil {
		return nil, err
	}
	return &SaveResult{Status: "synced"}, nil
}

func TestImportReadsFullMultipartUpload(t *testing.T) {
	svc := &captureService{}
	ctrl := NewWorkspaceController(svc)

	app := fiber.New()
	app.Post("/api/workspace/import", middleware.AuthMiddleware(true), ctrl.Import)

	// A payload well past any single-read buffer size.
	pages := make([]dashboard.Dashboard, 0, 2000)
	for i := 0; i < 2000; i++ {
		pages = append(pages, dashboard.Dashboard{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Page %d", i)})
	}
	payload, err := json.Marshal(pages)
	if err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "dashboards.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := form.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/workspace/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if len(svc.imported) != len(payload) {
		t.Errorf("service received %d bytes, want the full %d", len(svc.imported), len(payload))
	}
}
