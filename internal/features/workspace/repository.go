package workspace

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-dashboards/internal/database"
	"go-dashboards/internal/features/dashboard"
)

type WorkspaceRepository interface {
	Load(ctx context.Context, userID string) ([]dashboard.Dashboard, time.Time, error)
	Save(ctx context.Context, userID string, dashboards []dashboard.Dashboard) (time.Time, error)
	LastUpdate(ctx context.Context, userID string) (time.Time, error)
}

var ErrNoWorkspace = errors.New("no workspace stored")

type WorkspaceRepositoryImpl struct {
	db *sql.DB
}

func NewWorkspaceRepository(pg *database.PostgresDB) WorkspaceRepository {
	return &WorkspaceRepositoryImpl{db: pg.DB}
}

func (r *WorkspaceRepositoryImpl) Load(ctx context.Context, userID string) ([]dashboard.Dashboard, time.Time, error) {
	var payload []byte
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT data, updated_at FROM workspaces WHERE user_id = $1`, userID).
		Scan(&payload, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoWorkspace
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var dashboards []dashboard.Dashboard
	if err := json.Unmarshal(payload, &dashboards); err != nil {
		return nil, time.Time{}, err
	}
	return dashboards, updatedAt, nil
}

func (r *WorkspaceRepositoryImpl) Save(ctx context.Context, userID string, dashboards []dashboard.Dashboard) (time.Time, error) {
	payload, err := json.Marshal(dashboards)
	if err != nil {
		return time.Time{}, err
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO workspaces (user_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		userID, payload, now)
	if err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func (r *WorkspaceRepositoryImpl) LastUpdate(ctx context.Context, userID string) (time.Time, error) {
	var t time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT updated_at FROM workspaces WHERE user_id = $1`, userID).Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrNoWorkspace
	}
	return t, err
}
