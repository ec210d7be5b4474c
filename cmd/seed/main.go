package main

import (
	"context"

	"go-dashboards/internal/config"
	"go-dashboards/internal/database"
	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/features/datasource"
	"go-dashboards/internal/features/profile"
	"go-dashboards/internal/features/workspace"
	"go-dashboards/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// devUserID matches the dummy claims injected when SKIP_AUTH=true so the
// seeded workspace shows up immediately in local development.
const (
	devUserID = "00000000-0000-0000-0000-000000000001"
	devEmail  = "dev@localhost"
)

// Seed creates the dev profile and its preset workspace.
func Seed(
	lc fx.Lifecycle,
	pg *database.PostgresDB,
	profileRepo profile.ProfileRepository,
	dashboardRepo dashboard.DashboardRepository,
	workspaceRepo workspace.WorkspaceRepository,
	resolver datasource.Resolver,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding dashboard store...")

				if err := pg.EnsureSchema(ctx); err != nil {
					logger.Error("Failed to ensure schema", zap.Error(err))
					return
				}

				if _, err := profileRepo.Get(ctx, devUserID); err == nil {
					logger.Info("Dev profile exists, skipping", zap.String("email", devEmail))
				} else {
					err := profileRepo.Create(ctx, &profile.Profile{
						ID:       devUserID,
						Email:    devEmail,
						FullName: "Dev User",
						Password: "dev123", // hash password placeholder (TODO: use bcrypt)
					})
					if err != nil {
						logger.Error("Failed to create dev profile", zap.Error(err))
						return
					}
					logger.Info("Created dev profile", zap.String("email", devEmail))
				}

				if existing, _, err := workspaceRepo.Load(ctx, devUserID); err == nil && len(existing) > 0 {
					logger.Info("Workspace already seeded, skipping",
						zap.Int("pages", len(existing)))
					return
				}

				presets := workspace.PresetDashboards(resolver)
				if _, err := workspaceRepo.Save(ctx, devUserID, presets); err != nil {
					logger.Error("Failed to seed workspace", zap.Error(err))
					return
				}
				logger.Info("Seeded preset workspace", zap.Int("pages", len(presets)))

				// Each preset page also becomes a standalone dashboard so
				// sharing and publishing can be tried right away.
				for _, page := range presets {
					err := dashboardRepo.Create(ctx, &dashboard.StoredDashboard{
						ID:      page.ID,
						OwnerID: devUserID,
						Name:    page.Name,
						Data:    page,
					})
					if err != nil {
						logger.Warn("Failed to seed dashboard",
							zap.String("name", page.Name), zap.Error(err))
					}
				}

				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			database.NewPostgres,

			profile.NewProfileRepository,
			dashboard.NewDashboardRepository,
			workspace.NewWorkspaceRepository,
			datasource.NewResolver,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
