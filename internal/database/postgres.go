package database

import (
	"context"
	"database/sql"
	"log"

	"go-dashboards/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
)

type PostgresDB struct {
	DB *sql.DB
}

// NewPostgres opens the dashboard store connection with lifecycle management.
func NewPostgres(lc fx.Lifecycle, cfg *config.Config) (*PostgresDB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	log.Println("Connected to Postgres!")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Closing Postgres connection...")
			return db.Close()
		},
	})

	return &PostgresDB{DB: db}, nil
}

// EnsureSchema creates the dashboard store tables when they are missing.
// The shape mirrors the hosted backend the original client talked to.
func (p *PostgresDB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id         uuid PRIMARY KEY,
			email      text UNIQUE NOT NULL,
			full_name  text,
			avatar_url text,
			password   text NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS dashboards (
			id          uuid PRIMARY KEY,
			owner_id    uuid NOT NULL REFERENCES profiles(id),
			name        text NOT NULL,
			data        jsonb NOT NULL DEFAULT '[]'::jsonb,
			updated_at  timestamptz NOT NULL DEFAULT now(),
			is_public   boolean NOT NULL DEFAULT false,
			public_slug text UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS dashboard_members (
			dashboard_id uuid NOT NULL REFERENCES dashboards(id) ON DELETE CASCADE,
			user_id      uuid NOT NULL REFERENCES profiles(id),
			role         text NOT NULL DEFAULT 'viewer',
			created_at   timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (dashboard_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS workspaces (
			user_id    uuid PRIMARY KEY REFERENCES profiles(id),
			data       jsonb NOT NULL DEFAULT '[]'::jsonb,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := p.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
