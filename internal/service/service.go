package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"

	"github.com/Skotchmaster/art_gallery/internal/models"
)

var (
	ErrValidation   = errors.New("validation")       // 400
	ErrUnauthorized = errors.New("unauthorized")     // 401
	ErrNotFound     = errors.New("not found")        // 404
	ErrConflict     = errors.New("conflict")         // 409
	ErrInventory    = errors.New("inventory update") // 500
	ErrUnavailable  = errors.New("unavailable")      // 503
)

var tracer = otel.Tracer("github.com/Skotchmaster/art_gallery/internal/service")

// ArtworkStore is the artworks collection of the document store.
// Lookups of absent ids fail with gorm.ErrRecordNotFound.
type ArtworkStore interface {
	CreateArtwork(ctx context.Context, art *models.Artwork) error
	GetArtwork(ctx context.Context, id string) (*models.Artwork, error)
	ListArtworks(ctx context.Context, category string) ([]models.Artwork, error)
	LatestArtworks(ctx context.Context, limit int) ([]models.Artwork, error)
	DeleteArtwork(ctx context.Context, id string) error
	SetArtworkSold(ctx context.Context, id string, sold bool) error
}

// OrderStore is the orders collection of the document store.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ArtworkIndexer interface {
	IndexArtwork(ctx context.Context, art *models.Artwork) error
	RemoveArtwork(ctx context.Context, id string) error
	SearchArtworks(ctx context.Context, query string, size int) ([]models.Artwork, error)
}

type noopPublisher struct{}

func (noopPublisher) PublishEvent(context.Context, string, string, any) error { return nil }

// NoopPublisher drops every event; used when no broker is configured.
var NoopPublisher EventPublisher = noopPublisher{}
