package server

import (
	"net/http"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/apidoc"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/config"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/database"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/handlers"
	authmw "github.com/boldenardo/astrotarot-hub-sub001/internal/middleware"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/tarot"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/rs/zerolog"
)

// Services holds the store-backed services shared by the router and background jobs.
type Services struct {
	JWT      *services.JWTService
	Users    *services.UserService
	Tokens   *services.TokenService
	Readings *services.ReadingService
}

func NewServices(cfg *config.Config, db *database.DB) *Services {
	return &Services{
		JWT:      services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry),
		Users:    services.NewUserService(db),
		Tokens:   services.NewTokenService(db),
		Readings: services.NewReadingService(db, tarot.NewDrawer(nil), cfg.Readings),
	}
}

// NewRouter wires every /api/v1 route onto a drift app.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *database.DB, svc *Services) http.Handler {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Tokens, svc.JWT, log)
	userHandler := handlers.NewUserHandler(svc.Users, log)
	readingHandler := handlers.NewReadingHandler(svc.Readings, svc.Users, log)
	healthHandler := handlers.NewHealthHandler(db)
	docsHandler := handlers.NewDocsHandler(apidoc.JSON, log)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	api.Get("/health", healthHandler.Check)
	api.Get("/openapi.json", docsHandler.OpenAPI)

	protected := api.Group("")
	protected.Use(authmw.Auth(svc.JWT))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/user/readings", readingHandler.ListMine)
	protected.Post("/readings", readingHandler.Create)
	protected.Get("/readings/:id", readingHandler.Get)

	return app
}
