package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/clientasset/clientasset-api/docs"
	"github.com/clientasset/clientasset-api/internal/api/handler"
	"github.com/clientasset/clientasset-api/internal/api/middleware"
	"github.com/clientasset/clientasset-api/internal/core/ports"
	"github.com/clientasset/clientasset-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Logger  zerolog.Logger
	Clients ports.ClientService
	Assets  ports.AssetService

	// Idempotency is optional; nil disables Idempotency-Key replays.
	Idempotency middleware.IdempotencyStore
	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handlers.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(ports.WithRequestID(req.Context(), id)))
		},
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.Metrics())
	if deps.Idempotency != nil {
		e.Use(middleware.Idempotency(deps.Idempotency, deps.Logger))
	}

	// --- Ops ---
	e.GET("/", handler.Home)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(deps.Readiness).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Clients ---
	clientHandler := handler.NewClientHandler(deps.Clients)
	e.POST("/clients", clientHandler.Create)
	e.GET("/clients", clientHandler.List)
	e.PUT("/clients/:id", clientHandler.Replace)
	e.PATCH("/clients/:id", clientHandler.Patch)
	e.DELETE("/clients/:id", clientHandler.Delete)

	// --- Assets (update and delete act on the client's first asset) ---
	assetHandler := handler.NewAssetHandler(deps.Assets)
	e.POST("/clients/:id/assets", assetHandler.Add)
	e.GET("/clients/:id/assets", assetHandler.List)
	e.PATCH("/clients/:id/assets", assetHandler.Patch)
	e.DELETE("/clients/:id/assets", assetHandler.Delete)

	return e
}
