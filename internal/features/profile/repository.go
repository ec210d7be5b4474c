package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-dashboards/internal/database"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	IDByEmail(ctx context.Context, email string) (string, error)
	Update(ctx context.Context, p *Profile) error
}

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepositoryImpl struct {
	db *sql.DB
}

func NewProfileRepository(pg *database.PostgresDB) ProfileRepository {
	return &ProfileRepositoryImpl{db: pg.DB}
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, full_name, avatar_url, password, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Email, p.FullName, p.AvatarURL, p.Password, p.UpdatedAt)
	return err
}

func (r *ProfileRepositoryImpl) Get(ctx context.Context, id string) (*Profile, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''), password, updated_at
		FROM profiles WHERE id = $1`, id))
}

func (r *ProfileRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''), password, updated_at
		FROM profiles WHERE lower(email) = lower($1)`, email))
}

func (r *ProfileRepositoryImpl) IDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM profiles WHERE lower(email) = lower($1)`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrProfileNotFound
	}
	return id, err
}

func (r *ProfileRepositoryImpl) Update(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET full_name = $2, avatar_url = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.FullName, p.AvatarURL, p.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) scanOne(row *sql.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Password, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
