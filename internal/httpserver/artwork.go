package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/art_gallery/internal/service"
	"github.com/Skotchmaster/art_gallery/internal/transport"
	"github.com/Skotchmaster/art_gallery/internal/util"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

type ArtworkHTTP struct {
	Svc *service.CatalogService
}

func (h *ArtworkHTTP) GetArtworks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artwork.get_artworks")

	q := service.ListArtworksQuery{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	}

	arts, err := h.Svc.ListArtworks(ctx, q)
	if err != nil {
		return fail(l, "get_artworks_error", err, "Failed to fetch artworks")
	}

	l.Info("get_artworks_success", "count", len(arts))
	return c.JSON(http.StatusOK, arts)
}

func (h *ArtworkHTTP) SearchArtworks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artwork.search")

	arts, err := h.Svc.SearchArtworks(ctx, c.QueryParam("q"))
	if err != nil {
		return fail(l, "search_artworks_error", err, "Failed to search artworks")
	}

	l.Info("search_artworks_success", "count", len(arts))
	return c.JSON(http.StatusOK, arts)
}

func (h *ArtworkHTTP) GetLatestArtworks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artwork.get_latest")

	limit := util.ParseIntDefault(c.Param("limit"), service.DefaultLatestLimit)

	arts, err := h.Svc.LatestArtworks(ctx, limit)
	if err != nil {
		return fail(l, "get_latest_error", err, "Failed to fetch latest artworks")
	}

	return c.JSON(http.StatusOK, arts)
}

func (h *ArtworkHTTP) GetArtwork(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artwork.get_artwork")

	art, err := h.Svc.GetArtwork(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_artwork_error", err, "Failed to fetch artwork")
	}

	return c.JSON(http.StatusOK, art)
}

func (h *ArtworkHTTP) CreateArtwork(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artwork.create_artwork")

	var req transport.CreateArtworkRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_artwork_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	art, err := h.Svc.CreateArtwork(ctx, req)
	if err != nil {
		return fail(l, "create_artwork_error", err, "Failed to create artwork")
	}

	l.Info("create_artwork_success", "artwork_id", art.ID)
	return c.JSON(http.StatusCreated, art)
}

func (h *ArtworkHTTP) DeleteArtwork(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artwork.delete_artwork")

	id := c.Param("id")
	if err := h.Svc.DeleteArtwork(ctx, id); err != nil {
		return fail(l, "delete_artwork_error", err, "Failed to delete artwork")
	}

	l.Info("delete_artwork_success", "artwork_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Artwork deleted successfully"})
}
