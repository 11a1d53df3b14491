package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/br-labs/restaurant-api/internal/api/handler"
	"github.com/br-labs/restaurant-api/internal/api/middleware"
	"github.com/br-labs/restaurant-api/internal/core/service"
	mongodb "github.com/br-labs/restaurant-api/internal/infrastructure/db/mongo"
)

// RouterConfig carries the dependencies and settings the router needs.
type RouterConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("restaurant_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	restaurantRepo := mongodb.NewRestaurantRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, roleRepo, tokenService)
	restaurantService := service.NewRestaurantService(restaurantRepo, userRepo, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	requireAuth := middleware.Auth(tokenService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Restaurant routes ---
	// Reads are public; mutations and the "my" view require a bearer token.
	restaurants := e.Group("/api/restaurants")
	restaurants.GET("", restaurantHandler.List)
	restaurants.GET("/my", restaurantHandler.ListMine, requireAuth)
	restaurants.GET("/:id", restaurantHandler.Get)
	restaurants.POST("", restaurantHandler.Create, requireAuth)
	restaurants.PUT("/:id", restaurantHandler.Update, requireAuth)
	restaurants.DELETE("/:id", restaurantHandler.Delete, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	// liveness: is the process alive? readiness: are dependencies up?
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
