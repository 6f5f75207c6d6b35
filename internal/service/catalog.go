package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/internal/models"
	"github.com/Skotchmaster/art_gallery/internal/mykafka"
	"github.com/Skotchmaster/art_gallery/internal/transport"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

const (
	SortPriceLowHigh = "priceLowHigh"
	SortPriceHighLow = "priceHighLow"
	SortNewest       = "newest"

	DefaultLatestLimit = 5
	DefaultMaxLatest   = 50
	searchSize         = 50
)

type ListArtworksQuery struct {
	Category string
	Search   string
	Sort     string
}

type CatalogService struct {
	Repo      ArtworkStore
	Index     ArtworkIndexer
	Events    EventPublisher
	MaxLatest int
}

// NewCatalogService wires the catalog; index may be nil when search is not configured.
func NewCatalogService(repo ArtworkStore, index ArtworkIndexer, events EventPublisher, maxLatest int) *CatalogService {
	if events == nil {
		events = NoopPublisher
	}
	if maxLatest < 1 {
		maxLatest = DefaultMaxLatest
	}
	return &CatalogService{Repo: repo, Index: index, Events: events, MaxLatest: maxLatest}
}

func (s *CatalogService) ListArtworks(ctx context.Context, q ListArtworksQuery) ([]models.Artwork, error) {
	category := q.Category
	if category == models.CategoryAll {
		category = ""
	}

	arts, err := s.Repo.ListArtworks(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}

	out := make([]models.Artwork, 0, len(arts))
	needle := strings.ToLower(q.Search)
	for _, a := range arts {
		if needle == "" ||
			strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Artist), needle) {
			out = append(out, a)
		}
	}

	switch q.Sort {
	case SortPriceLowHigh:
		slices.SortStableFunc(out, func(a, b models.Artwork) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHighLow:
		slices.SortStableFunc(out, func(a, b models.Artwork) int { return cmp.Compare(b.Price, a.Price) })
	case SortNewest:
		slices.SortStableFunc(out, func(a, b models.Artwork) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}

	return out, nil
}

func (s *CatalogService) GetArtwork(ctx context.Context, id string) (*models.Artwork, error) {
	art, err := s.Repo.GetArtwork(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: artwork %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get artwork %s: %w", id, err)
	}
	return art, nil
}

// LatestArtworks returns the newest artworks. A limit below 1 falls back to
// DefaultLatestLimit and anything above MaxLatest is clamped.
func (s *CatalogService) LatestArtworks(ctx context.Context, limit int) ([]models.Artwork, error) {
	if limit < 1 {
		limit = DefaultLatestLimit
	}
	if s.MaxLatest > 0 && limit > s.MaxLatest {
		limit = s.MaxLatest
	}

	arts, err := s.Repo.LatestArtworks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("latest artworks: %w", err)
	}
	if arts == nil {
		arts = []models.Artwork{}
	}
	return arts, nil
}

func (s *CatalogService) CreateArtwork(ctx context.Context, req transport.CreateArtworkRequest) (*models.Artwork, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_artwork")

	art, err := validateArtwork(req)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateArtwork(ctx, art); err != nil {
		l.Error("create_artwork_error", "status", 500, "collection", "artworks", "operation", "create", "error", err)
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	if s.Index != nil {
		if err := s.Index.IndexArtwork(ctx, art); err != nil {
			l.Warn("index_artwork_error", "artwork_id", art.ID, "error", err)
		}
	}

	s.publish(ctx, art.ID, map[string]any{
		"type":      "artwork_created",
		"artworkID": art.ID,
		"title":     art.Title,
	})
	return art, nil
}

func validateArtwork(req transport.CreateArtworkRequest) (*models.Artwork, error) {
	title := strings.TrimSpace(req.Title)
	artist := strings.TrimSpace(req.Artist)
	category := strings.TrimSpace(req.Category)
	imageURL := strings.TrimSpace(req.ImageURL)

	switch {
	case title == "":
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	case artist == "":
		return nil, fmt.Errorf("%w: artist is required", ErrValidation)
	case !req.Price.Present:
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	case !req.Price.Valid:
		return nil, fmt.Errorf("%w: price must be a number", ErrValidation)
	case req.Price.Value < 0:
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	case category == "":
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	case !slices.Contains(models.Categories, category):
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	case imageURL == "":
		return nil, fmt.Errorf("%w: imageUrl is required", ErrValidation)
	}

	return &models.Artwork{
		Title:    title,
		Artist:   artist,
		Price:    req.Price.Value,
		Category: category,
		ImageURL: imageURL,
		Sold:     false,
	}, nil
}

// DeleteArtwork removes the artwork. Deleting an id that is already gone succeeds.
// Orders keep their own snapshot of the artwork.
func (s *CatalogService) DeleteArtwork(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_artwork", "artwork_id", id)

	if err := s.Repo.DeleteArtwork(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("delete_artwork_error", "status", 500, "collection", "artworks", "operation", "delete", "error", err)
			return fmt.Errorf("delete artwork %s: %w", id, err)
		}
		l.Info("delete_artwork_absent")
	}

	if s.Index != nil {
		if err := s.Index.RemoveArtwork(ctx, id); err != nil {
			l.Warn("unindex_artwork_error", "error", err)
		}
	}

	s.publish(ctx, id, map[string]any{
		"type":      "artwork_deleted",
		"artworkID": id,
	})
	return nil
}

func (s *CatalogService) SearchArtworks(ctx context.Context, query string) ([]models.Artwork, error) {
	if s.Index == nil {
		return nil, fmt.Errorf("%w: search index is not configured", ErrUnavailable)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: q is required", ErrValidation)
	}

	arts, err := s.Index.SearchArtworks(ctx, query, searchSize)
	if err != nil {
		return nil, fmt.Errorf("search artworks: %w", err)
	}
	if arts == nil {
		arts = []models.Artwork{}
	}
	return arts, nil
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Events.PublishEvent(ctx, mykafka.TopicArtworkEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", mykafka.TopicArtworkEvents, "type", event["type"], "error", err)
	}
}
