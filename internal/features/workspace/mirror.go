package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go-dashboards/internal/config"
	"go-dashboards/internal/features/dashboard"
)

// mirrorKey matches the browser's localStorage key so an exported mirror
// file is recognizable next to one pulled from a browser profile.
const mirrorKey = "econ-crypto-dashboard-v1"

// Mirror is the on-disk fallback copy of each user's workspace. Every save
// writes here synchronously; boot reads from it when the database cannot
// answer in time.
type Mirror struct {
	dir string
}

func NewMirror(cfg *config.Config) *Mirror {
	return &Mirror{dir: cfg.DataDir}
}

func (m *Mirror) path(userID string) string {
	return filepath.Join(m.dir, fmt.Sprintf("%s.%s.json", mirrorKey, userID))
}

// Load reads the user's mirror. A missing file yields nil, nil.
func (m *Mirror) Load(userID string) ([]dashboard.Dashboard, error) {
	body, err := os.ReadFile(m.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dashboards []dashboard.Dashboard
	if err := json.Unmarshal(body, &dashboards); err != nil {
		// A corrupt mirror is treated as absent rather than fatal.
		return nil, nil
	}
	return dashboards, nil
}

// Save writes the user's mirror atomically via a temp file rename.
func (m *Mirror) Save(userID string, dashboards []dashboard.Dashboard) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}

	body, err := json.Marshal(dashboards)
	if err != nil {
		return err
	}

	tmp := m.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path(userID))
}
