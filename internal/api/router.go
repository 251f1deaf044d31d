package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sserranom/virtualpets-api/internal/api/handler"
	"github.com/sserranom/virtualpets-api/internal/api/middleware"
	"github.com/sserranom/virtualpets-api/internal/core/domain"
	"github.com/sserranom/virtualpets-api/internal/core/service"
	"github.com/sserranom/virtualpets-api/internal/infrastructure/config"
	mongodb "github.com/sserranom/virtualpets-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sserranom/virtualpets-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("virtualpets"))

	// --- Dependencies ---
	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	userRepo := mongodb.NewUserRepository(db)
	petRepo := mongodb.NewPetRepository(db)
	petCache := redisdb.NewPetCache(rdb, cfg.CacheTTL)
	authService := service.NewAuthService(userRepo, codec, log)
	petService := service.NewPetService(petRepo, userRepo, petCache, log)
	authHandler := handler.NewAuthHandler(authService)
	petHandler := handler.NewPetHandler(petService)

	// The identity middleware runs on every request and never rejects: a bad
	// or missing token just leaves the request unauthenticated for the
	// authorization middleware below to deny.
	e.Use(middleware.Identity(codec, authService))

	// --- Auth routes (public) ---
	e.POST("/auth/sign-up", authHandler.SignUp)
	e.POST("/auth/log-in", authHandler.LogIn)

	// --- Pet routes (authenticated) ---
	pets := e.Group("/api/pets", middleware.RequireAuth())
	pets.POST("", petHandler.Create)
	pets.GET("/all", petHandler.ListAll, middleware.RequireAuthority(domain.RolePrefix+string(domain.RoleAdmin)))
	pets.GET("/my-pets", petHandler.ListMine)
	pets.GET("/:id", petHandler.Get)
	pets.PUT("/:id", petHandler.Update)
	pets.DELETE("/:id", petHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
