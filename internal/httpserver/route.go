package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/art_gallery/internal/transport"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
	middleware "github.com/Skotchmaster/art_gallery/pkg/middleware/auth"
)

type Deps struct {
	ArtworkHandler *ArtworkHTTP
	OrderHandler   *OrderHTTP
	AuthHandler    *AuthHTTP
	Verifier       middleware.Verifier
	// Ready reports whether the backing store is reachable; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	authMW := middleware.NewBearerMiddleware(d.Verifier)
	admin := authMW.RequireAdmin

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.HealthResponse{Status: "OK", Message: "Server is running"})
	})
	api.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	api.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Error("readiness_failed", "status", 503, "error", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	if d.AuthHandler != nil {
		api.POST("/auth/login", d.AuthHandler.Login)
	}

	artworks := api.Group("/artworks")
	artworks.GET("", d.ArtworkHandler.GetArtworks)
	artworks.GET("/search", d.ArtworkHandler.SearchArtworks)
	artworks.GET("/latest/:limit", d.ArtworkHandler.GetLatestArtworks)
	artworks.GET("/:id", d.ArtworkHandler.GetArtwork)
	artworks.POST("", d.ArtworkHandler.CreateArtwork, admin)
	artworks.DELETE("/:id", d.ArtworkHandler.DeleteArtwork, admin)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders, admin)
	orders.POST("/reconcile", d.OrderHandler.ReconcileAll, admin)
	orders.GET("/:id", d.OrderHandler.GetOrder, admin)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateOrderStatus, admin)
	orders.POST("/:id/reconcile", d.OrderHandler.ReconcileOrder, admin)
}
