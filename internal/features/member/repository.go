package member

import (
	"context"
	"database/sql"
	"errors"

	"go-dashboards/internal/database"
)

type MemberRepository interface {
	Upsert(ctx context.Context, dashboardID, userID string, role Role) error
	Remove(ctx context.Context, dashboardID, userID string) error
	List(ctx context.Context, dashboardID string) ([]Member, error)
	RoleFor(ctx context.Context, dashboardID, userID string) (Role, error)
}

var ErrNotMember = errors.New("not a member")

type MemberRepositoryImpl struct {
	db *sql.DB
}

func NewMemberRepository(pg *database.PostgresDB) MemberRepository {
	return &MemberRepositoryImpl{db: pg.DB}
}

func (r *MemberRepositoryImpl) Upsert(ctx context.Context, dashboardID, userID string, role Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dashboard_members (dashboard_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (dashboard_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		dashboardID, userID, string(role))
	return err
}

func (r *MemberRepositoryImpl) Remove(ctx context.Context, dashboardID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM dashboard_members WHERE dashboard_id = $1 AND user_id = $2`,
		dashboardID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotMember
	}
	return nil
}

func (r *MemberRepositoryImpl) List(ctx context.Context, dashboardID string) ([]Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.dashboard_id, m.user_id, p.email, COALESCE(p.full_name, ''), m.role, m.created_at
		FROM dashboard_members m
		JOIN profiles p ON p.id = m.user_id
		WHERE m.dashboard_id = $1
		ORDER BY m.created_at`,
		dashboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.DashboardID, &m.UserID, &m.Email, &m.FullName, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepositoryImpl) RoleFor(ctx context.Context, dashboardID, userID string) (Role, error) {
	var role Role
	err := r.db.QueryRowContext(ctx, `
		SELECT role FROM dashboard_members WHERE dashboard_id = $1 AND user_id = $2`,
		dashboardID, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrNotMember
	}
	if err != nil {
		return "", err
	}
	return role, nil
}
