package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tripwell/tripwell/internal/api"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/repository"
	"github.com/tripwell/tripwell/internal/service"
	"github.com/tripwell/tripwell/internal/session"
	"github.com/tripwell/tripwell/internal/utils"
	"github.com/tripwell/tripwell/pkg/config"
	"github.com/tripwell/tripwell/pkg/health"
)

type App struct {
	config   *config.Config
	server   *http.Server
	db       *pgxpool.Pool
	sessions *session.RedisStore
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupSessions(ctx); err != nil {
		return fmt.Errorf("session store setup failed: %w", err)
	}

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupSessions(ctx context.Context) error {
	store := session.NewRedisStore(a.config.Redis, a.config.Session.TTL)
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	a.sessions = store
	return nil
}

func (a *App) setupServer() error {
	services := a.setupServices()
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	AuthService    ports.AuthService
	BookingService ports.BookingService
	AdminService   ports.AdminService
}

func (a *App) setupServices() Services {
	users := repository.NewUserRepository(a.db)
	bookings := repository.NewBookingRepository(a.db)
	promos := repository.NewPromoRepository(a.db)

	return Services{
		AuthService:    service.NewAuthService(users, a.config.Auth.BcryptCost),
		BookingService: service.NewBookingService(bookings, promos),
		AdminService:   service.NewAdminService(users, bookings, promos),
	}
}

func (a *App) setupRouter(services Services) http.Handler {
	router := http.NewServeMux()
	sessionCfg := a.config.Session

	jsonOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return utils.AllowedContentTypes(h, "application/json")
	}
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return api.RequireAuth(a.sessions, sessionCfg.CookieName, h)
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return api.RequireAdmin(a.sessions, sessionCfg.CookieName, h)
	}

	router.HandleFunc("GET /v1/health", health.HealthGet(map[string]health.Pinger{
		"postgres": a.db,
		"redis":    a.sessions,
	}))

	router.HandleFunc("POST /api/register", jsonOnly(api.RegisterHandler(services.AuthService)))
	router.HandleFunc("POST /api/login", jsonOnly(api.LoginHandler(services.AuthService, a.sessions, sessionCfg)))
	router.HandleFunc("POST /api/logout", api.LogoutHandler(a.sessions, sessionCfg))
	router.HandleFunc("GET /api/session", api.SessionHandler(a.sessions, sessionCfg))

	router.HandleFunc("POST /api/bookings", auth(jsonOnly(api.CreateBookingHandler(services.BookingService))))
	router.HandleFunc("POST /api/bookings/quote", auth(jsonOnly(api.QuoteHandler(services.BookingService))))
	router.HandleFunc("GET /api/bookings", auth(api.ListBookingsHandler(services.BookingService)))
	router.HandleFunc("PATCH /api/bookings/{id}/cancel", auth(api.CancelBookingHandler(services.BookingService)))
	router.HandleFunc("POST /api/reviews", auth(jsonOnly(api.ReviewHandler(services.BookingService))))
	router.HandleFunc("POST /api/favorites", auth(jsonOnly(api.FavoriteHandler(services.BookingService))))

	router.HandleFunc("GET /api/admin/stats", admin(api.AdminStatsHandler(services.AdminService)))
	router.HandleFunc("GET /api/admin/users", admin(api.AdminUsersHandler(services.AdminService)))
	router.HandleFunc("GET /api/admin/bookings", admin(api.AdminBookingsHandler(services.AdminService)))
	router.HandleFunc("PATCH /api/admin/users/{id}", admin(jsonOnly(api.UpdateUserRolesHandler(services.AdminService))))
	router.HandleFunc("DELETE /api/admin/users/{id}", admin(api.DeleteUserHandler(services.AdminService)))
	router.HandleFunc("POST /api/admin/promocodes", admin(jsonOnly(api.CreatePromoCodeHandler(services.AdminService))))

	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		log.Println("Starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			log.Printf("session store close failed: %v", err)
		}
	}

	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	// Populate the environment from a local .env in development; absence is
	// fine, real deployments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := NewApp(cfg)
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
