package dashboard

import (
	"time"

	"go-dashboards/internal/features/widget"
)

// Dashboard is one page of widgets. This is the unit the browser renders and
// the JSON value stored in the dashboards.data column.
type Dashboard struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Widgets []widget.Widget `json:"widgets"`
}

// StoredDashboard is a row of the dashboards table.
type StoredDashboard struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Data       Dashboard `json:"data"`
	UpdatedAt  time.Time `json:"updated_at"`
	IsPublic   bool      `json:"is_public"`
	PublicSlug string    `json:"public_slug,omitempty"`
}

type CreateDashboardRequest struct {
	Name    string          `json:"name"`
	Widgets []widget.Widget `json:"widgets"`
}

type RenameRequest struct {
	Name string `json:"name"`
}

type MoveWidgetRequest struct {
	Direction string `json:"direction"` // up, down, left, right
}

type ResizeWidgetRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ReorderWidgetRequest struct {
	TargetID string `json:"target_id"`
	Before   bool   `json:"before"`
}

type PublishRequest struct {
	Public bool `json:"public"`
}
