package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/internal/models"
)

func (r *GormRepo) CreateArtwork(ctx context.Context, art *models.Artwork) error {
	if art.ID == "" {
		art.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(art).Error
}

func (r *GormRepo) GetArtwork(ctx context.Context, id string) (*models.Artwork, error) {
	var art models.Artwork
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&art).Error; err != nil {
		return nil, err
	}
	return &art, nil
}

// ListArtworks returns artworks in store order, filtered by exact category when one is given.
func (r *GormRepo) ListArtworks(ctx context.Context, category string) ([]models.Artwork, error) {
	q := r.DB.WithContext(ctx).Model(&models.Artwork{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var items []models.Artwork
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) LatestArtworks(ctx context.Context, limit int) ([]models.Artwork, error) {
	var items []models.Artwork
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) DeleteArtwork(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Artwork{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) SetArtworkSold(ctx context.Context, id string, sold bool) error {
	res := r.DB.WithContext(ctx).Model(&models.Artwork{}).Where("id = ?", id).Update("sold", sold)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
