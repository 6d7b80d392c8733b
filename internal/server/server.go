// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "devconnector/docs" // swagger docs
	"devconnector/internal/auth"
	"devconnector/internal/bootstrap"
	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/middleware"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/revocation"
	"devconnector/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	appOnce        sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenManager
	revocations    *revocation.Store
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	postRepo       repository.PostRepository
	userService    *service.UserService
	profileService *service.ProfileService
	postService    *service.PostService
}

// NewServer connects the database and Redis described by cfg and builds
// a Server on top of them.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, which disables logout.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("server: JWT secret is required")
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL()),
		revocations:    revocation.NewStore(redisClient),
		userRepo:       repository.NewUserRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		postRepo:       repository.NewPostRepository(db),
	}

	s.userService = service.NewUserService(s.userRepo, s.tokens, s.revocations)
	s.profileService = service.NewProfileService(s.profileRepo, s.userRepo)
	s.postService = service.NewPostService(s.postRepo)

	return s, nil
}

// NewApp builds a fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "DevConnector API",
		BodyLimit: 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))
}

// authRequired builds the bearer token guard.
func (s *Server) authRequired() fiber.Handler {
	return middleware.AuthRequired(middleware.AuthConfig{
		Tokens:      s.tokens,
		Users:       s.userRepo,
		Revocations: s.revocations,
	})
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	protected := s.authRequired()

	users := api.Group("/users")
	users.Get("/test", ping("users works"))
	users.Post("/register", s.Register)
	users.Post("/login", s.Login)
	users.Post("/current", protected, s.CurrentUser)
	users.Post("/logout", protected, s.Logout)

	profile := api.Group("/profile")
	profile.Get("/test", ping("profile works"))
	profile.Get("/", protected, s.GetCurrentProfile)
	profile.Post("/", protected, s.UpsertProfile)
	profile.Delete("/", protected, s.DeleteAccount)
	profile.Get("/all", s.GetAllProfiles)
	profile.Get("/handle/:handle", s.GetProfileByHandle)
	profile.Get("/user/:user_id", s.GetProfileByUser)
	profile.Post("/experience", protected, s.AddExperience)
	profile.Delete("/experience/:exp_id", protected, s.RemoveExperience)
	profile.Post("/education", protected, s.AddEducation)
	profile.Delete("/education/:edu_id", protected, s.RemoveEducation)

	posts := api.Group("/posts")
	posts.Get("/test", ping("posts works"))
	posts.Get("/", s.GetPosts)
	posts.Post("/", protected, s.CreatePost)
	posts.Post("/like/:id", protected, s.LikePost)
	posts.Post("/unlike/:id", protected, s.UnlikePost)
	posts.Post("/comment/:id", protected, s.AddComment)
	posts.Delete("/comment/:id/:comment_id", protected, s.RemoveComment)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", protected, s.DeletePost)
}

func ping(msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": msg})
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port. It blocks
// until the listener stops.
func (s *Server) Start() error {
	app := s.App()
	slog.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// App returns the server's fiber app, building it on first use. Start and
// Shutdown share this instance.
func (s *Server) App() *fiber.App {
	s.appOnce.Do(func() {
		s.app = s.NewApp()
	})
	return s.app
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.App().ShutdownWithContext(ctx); err != nil {
		slog.Error("error shutting down HTTP server", slog.String("error", err.Error()))
	}

	if err := database.Close(s.db); err != nil {
		slog.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			slog.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	slog.Info("Server shutdown complete")
	return nil
}
