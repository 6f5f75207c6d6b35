package es

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/art_gallery/internal/models"
)

type seenRequest struct {
	Method string
	Path   string
	Body   string
}

func newFakeES(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*ArtworkIndex, *[]seenRequest) {
	t.Helper()

	var mu sync.Mutex
	seen := []seenRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, seenRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	return NewArtworkIndex(client, "artworks"), &seen
}

func TestArtworkIndex_IndexAndRemove(t *testing.T) {
	ix, seen := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	ctx := context.Background()

	art := &models.Artwork{ID: "a-1", Title: "Sunset", Artist: "A. Roe", Category: "Landscape"}
	require.NoError(t, ix.IndexArtwork(ctx, art))
	require.NoError(t, ix.RemoveArtwork(ctx, "a-1"))

	require.Len(t, *seen, 2)
	assert.Equal(t, "/artworks/_doc/a-1", (*seen)[0].Path)
	assert.Contains(t, (*seen)[0].Body, `"title":"Sunset"`)
	assert.Equal(t, http.MethodDelete, (*seen)[1].Method)
	assert.Equal(t, "/artworks/_doc/a-1", (*seen)[1].Path)
}

func TestArtworkIndex_IndexError(t *testing.T) {
	ix, _ := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	err := ix.IndexArtwork(context.Background(), &models.Artwork{ID: "a-1"})
	require.Error(t, err)
}

func TestArtworkIndex_Search(t *testing.T) {
	ix, seen := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_source":{"id":"a-1","title":"Sunset over Bay","artist":"A. Roe"}}]}}`))
	})

	arts, err := ix.SearchArtworks(context.Background(), "sunst", 10)
	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, "Sunset over Bay", arts[0].Title)

	require.Len(t, *seen, 1)
	assert.True(t, strings.HasSuffix((*seen)[0].Path, "/_search"))
	assert.Contains(t, (*seen)[0].Body, `"fuzziness":"AUTO"`)
}
