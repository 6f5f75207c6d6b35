package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/art_gallery/internal/models"
)

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

func NewClient(ctx context.Context, cfg Config) (*elasticsearch.Client, error) {
	slog.Info("connecting to elasticsearch", "url", cfg.URL)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error response %s: %s", res.Status(), body)
	}

	return client, nil
}

// ArtworkIndex mirrors artworks into an Elasticsearch index for full-text search.
type ArtworkIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewArtworkIndex(client *elasticsearch.Client, index string) *ArtworkIndex {
	return &ArtworkIndex{ES: client, Index: index}
}

func (ix *ArtworkIndex) IndexArtwork(ctx context.Context, art *models.Artwork) error {
	body, err := json.Marshal(art)
	if err != nil {
		return fmt.Errorf("encode artwork: %w", err)
	}

	res, err := ix.ES.Index(
		ix.Index,
		bytes.NewReader(body),
		ix.ES.Index.WithDocumentID(art.ID),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index artwork %s: %w", art.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index artwork %s: %s", art.ID, res.Status())
	}
	return nil
}

func (ix *ArtworkIndex) RemoveArtwork(ctx context.Context, id string) error {
	res, err := ix.ES.Delete(ix.Index, id, ix.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("remove artwork %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove artwork %s: %s", id, res.Status())
	}
	return nil
}

func (ix *ArtworkIndex) SearchArtworks(ctx context.Context, query string, size int) ([]models.Artwork, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "artist"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search artworks: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search artworks: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Artwork `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	arts := make([]models.Artwork, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		arts[i] = hit.Source
	}
	return arts, nil
}
