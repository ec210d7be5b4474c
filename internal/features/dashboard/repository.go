package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-dashboards/internal/database"
)

type DashboardRepository interface {
	Create(ctx context.Context, d *StoredDashboard) error
	Get(ctx context.Context, id string) (*StoredDashboard, error)
	GetBySlug(ctx context.Context, slug string) (*StoredDashboard, error)
	ListForUser(ctx context.Context, userID string) ([]StoredDashboard, error)
	SaveData(ctx context.Context, id string, data Dashboard) (time.Time, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	SetPublic(ctx context.Context, id string, isPublic bool, slug string) error
	OwnerID(ctx context.Context, id string) (string, error)
	LastUpdate(ctx context.Context, id string) (time.Time, error)
}

var ErrDashboardMissing = errors.New("dashboard not found")

type DashboardRepositoryImpl struct {
	db *sql.DB
}

func NewDashboardRepository(pg *database.PostgresDB) DashboardRepository {
	return &DashboardRepositoryImpl{db: pg.DB}
}

func (r *DashboardRepositoryImpl) Create(ctx context.Context, d *StoredDashboard) error {
	payload, err := json.Marshal(d.Data)
	if err != nil {
		return err
	}
	d.UpdatedAt = time.Now()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dashboards (id, owner_id, name, data, updated_at, is_public, public_slug)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`,
		d.ID, d.OwnerID, d.Name, payload, d.UpdatedAt, d.IsPublic, d.PublicSlug)
	return err
}

func (r *DashboardRepositoryImpl) Get(ctx context.Context, id string) (*StoredDashboard, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, data, updated_at, is_public, COALESCE(public_slug, '')
		FROM dashboards WHERE id = $1`, id)
	return scanDashboard(row)
}

func (r *DashboardRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*StoredDashboard, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, data, updated_at, is_public, COALESCE(public_slug, '')
		FROM dashboards WHERE public_slug = $1 AND is_public = true`, slug)
	return scanDashboard(row)
}

func (r *DashboardRepositoryImpl) ListForUser(ctx context.Context, userID string) ([]StoredDashboard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.id, d.owner_id, d.name, d.data, d.updated_at, d.is_public, COALESCE(d.public_slug, '')
		FROM dashboards d
		LEFT JOIN dashboard_members m ON m.dashboard_id = d.id AND m.user_id = $1
		WHERE d.owner_id = $1 OR m.user_id IS NOT NULL
		ORDER BY d.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []StoredDashboard{}
	for rows.Next() {
		d, err := scanDashboard(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}

func (r *DashboardRepositoryImpl) SaveData(ctx context.Context, id string, data Dashboard) (time.Time, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return time.Time{}, err
	}

	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE dashboards SET data = $2, name = $3, updated_at = $4 WHERE id = $1`,
		id, payload, data.Name, now)
	if err != nil {
		return time.Time{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return time.Time{}, ErrDashboardMissing
	}
	return now, nil
}

func (r *DashboardRepositoryImpl) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dashboards
		SET name = $2, data = jsonb_set(data, '{name}', to_jsonb($2::text)), updated_at = now()
		WHERE id = $1`, id, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDashboardMissing
	}
	return nil
}

func (r *DashboardRepositoryImpl) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dashboards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDashboardMissing
	}
	return nil
}

func (r *DashboardRepositoryImpl) SetPublic(ctx context.Context, id string, isPublic bool, slug string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dashboards SET is_public = $2, public_slug = NULLIF($3, ''), updated_at = now()
		WHERE id = $1`, id, isPublic, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDashboardMissing
	}
	return nil
}

func (r *DashboardRepositoryImpl) OwnerID(ctx context.Context, id string) (string, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM dashboards WHERE id = $1`, id).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return "", ErrDashboardMissing
	}
	return ownerID, err
}

func (r *DashboardRepositoryImpl) LastUpdate(ctx context.Context, id string) (time.Time, error) {
	var t time.Time
	err := r.db.QueryRowContext(ctx, `SELECT updated_at FROM dashboards WHERE id = $1`, id).Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrDashboardMissing
	}
	return t, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDashboard(row rowScanner) (*StoredDashboard, error) {
	var d StoredDashboard
	var payload []byte
	err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &payload, &d.UpdatedAt, &d.IsPublic, &d.PublicSlug)
	if err == sql.ErrNoRows {
		return nil, ErrDashboardMissing
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &d.Data); err != nil {
		return nil, err
	}
	return &d, nil
}
