package workspace

import (
	"time"

	"go-dashboards/internal/features/dashboard"
)

// Workspace is the legacy per-user blob: every page the user owns in one
// JSON array plus the page currently on screen.
type Workspace struct {
	Dashboards []dashboard.Dashboard `json:"dashboards"`
	ActiveID   string                `json:"active_id,omitempty"`
}

// Load sources, in fallback order.
const (
	SourceRemote  = "remote"
	SourceMirror  = "mirror"
	SourcePresets = "presets"
)

// LoadResult reports where the workspace came from on boot.
type LoadResult struct {
	Workspace Workspace `json:"workspace"`
	Source    string    `json:"source"`
	Online    bool      `json:"online"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// SaveResult reports how a write-through landed.
type SaveResult struct {
	Status    string    `json:"status"` // synced, mirror-only, unchanged
	Online    bool      `json:"online"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type LastUpdateInfo struct {
	UpdatedAt time.Time `json:"updated_at"`
}

type AddPageResponse struct {
	Dashboards []dashboard.Dashboard `json:"dashboards"`
	Added      dashboard.Dashboard   `json:"added"`
}

type DeletePageResponse struct {
	Dashboards []dashboard.Dashboard `json:"dashboards"`
	NextActive string                `json:"next_active"`
}
