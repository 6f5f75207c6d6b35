package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/internal/models"
)

var errInjected = errors.New("injected storage fault")

// memStore is an in-memory document store with per-artwork fault injection.
type memStore struct {
	mu       sync.Mutex
	artworks map[string]*models.Artwork
	orders   map[string]*models.Order
	seq      []string

	failSold        map[string]error
	failCreateOrder error
	failUpdate      error
	failList        error
	soldCalls       int
}

func newMemStore() *memStore {
	return &memStore{
		artworks: map[string]*models.Artwork{},
		orders:   map[string]*models.Order{},
		failSold: map[string]error{},
	}
}

func (m *memStore) addArtwork(id string, sold bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artworks[id] = &models.Artwork{ID: id, Title: id, Artist: "x", Category: models.CategoryAbstract, Sold: sold}
	m.seq = append(m.seq, id)
}

func (m *memStore) sold(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.artworks[id].Sold
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) CreateArtwork(_ context.Context, art *models.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if art.ID == "" {
		art.ID = uuid.NewString()
	}
	cp := *art
	m.artworks[art.ID] = &cp
	m.seq = append(m.seq, art.ID)
	return nil
}

func (m *memStore) GetArtwork(_ context.Context, id string) (*models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artworks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) ListArtworks(_ context.Context, category string) ([]models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	var out []models.Artwork
	for _, id := range m.seq {
		a, ok := m.artworks[id]
		if !ok {
			continue
		}
		if category == "" || a.Category == category {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStore) LatestArtworks(ctx context.Context, limit int) ([]models.Artwork, error) {
	all, err := m.ListArtworks(ctx, "")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memStore) DeleteArtwork(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artworks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.artworks, id)
	return nil
}

func (m *memStore) SetArtworkSold(_ context.Context, id string, sold bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.soldCalls++
	if err := m.failSold[id]; err != nil {
		return err
	}
	a, ok := m.artworks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Sold = sold
	return nil
}

func (m *memStore) CreateOrder(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreateOrder != nil {
		return m.failCreateOrder
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	cp := *order
	cp.Items = append([]models.LineItem(nil), order.Items...)
	m.orders[order.ID] = &cp
	return nil
}

func (m *memStore) GetOrder(_ context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) ListOrders(_ context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) UpdateOrderStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return m.failUpdate
	}
	o, ok := m.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	m, _ := event.(map[string]any)
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}
