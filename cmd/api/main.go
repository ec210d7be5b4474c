package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-dashboards/internal/common/api"
	"go-dashboards/internal/config"
	"go-dashboards/internal/database"
	"go-dashboards/internal/features/audit"
	"go-dashboards/internal/features/auth"
	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/features/datasource"
	"go-dashboards/internal/features/member"
	"go-dashboards/internal/features/profile"
	"go-dashboards/internal/features/realtime"
	"go-dashboards/internal/features/workspace"
	"go-dashboards/internal/logger"
	"go-dashboards/internal/middleware"
	"go-dashboards/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             20 * 1024 * 1024, // uploaded spreadsheets
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeStore creates the Postgres tables at boot and hands the JWT
// secret to the token helpers.
func InitializeStore(lc fx.Lifecycle, pg *database.PostgresDB, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			return pg.EnsureSchema(ctx)
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Databases
			database.NewDatabase,
			database.NewPostgres,

			// Initialize Repository
			audit.NewAuditRepository,
			profile.NewProfileRepository,
			dashboard.NewDashboardRepository,
			member.NewMemberRepository,
			workspace.NewWorkspaceRepository,

			// Data plumbing
			datasource.NewResolver,
			datasource.NewRefresher,
			workspace.NewMirror,
			realtime.NewHub,

			audit.NewAuditService,
			auth.NewAuthService,
			profile.NewProfileService,
			member.NewMemberService,
			dashboard.NewDashboardService,
			workspace.NewWorkspaceService,
			datasource.NewDataSourceService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r profile.ProfileRepository) member.ProfileFinder { return r },
			func(r dashboard.DashboardRepository) member.OwnerChecker { return r },
			func(h *realtime.Hub) dashboard.Notifier { return h },
			func(h *realtime.Hub) workspace.Notifier { return h },
			func(s dashboard.DashboardService) workspace.PageDirectory { return s },

			// Initialize Controller
			auth.NewAuthController,
			profile.NewProfileController,
			audit.NewAuditController,
			dashboard.NewDashboardController,
			member.NewMemberController,
			workspace.NewWorkspaceController,
			datasource.NewDataSourceController,
			realtime.NewWebSocketController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(profile.NewProfileApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(member.NewMemberApi),
			AsRoute(workspace.NewWorkspaceApi),
			AsRoute(datasource.NewDataSourceApi),
			AsRoute(realtime.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			InitializeStore,

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,

			// Background widget refresh scheduler
			func(lc fx.Lifecycle, refresher *datasource.Refresher) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return refresher.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						refresher.Stop()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
