package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.Artwork{}, &models.Order{})
}
