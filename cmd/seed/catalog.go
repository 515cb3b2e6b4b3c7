package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/borealis-store/borealis-backend/pkg/db/models"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func starterCatalog() []models.Product {
	return []models.Product{
		{
			Name:         "Terra Vase",
			Price:        "$75.00",
			ImageURL:     "https://images.unsplash.com/photo-1588339339324-21e1d7519198?q=80&w=800&auto.format&fit=crop",
			CountInStock: 0,
		},
		{
			Name:         "Edison Lamp",
			Price:        "$120.00",
			ImageURL:     "https://images.unsplash.com/photo-1621951753178-734138d8342b?q=80&w=800&auto.format&fit=crop",
			CountInStock: 2,
		},
		{
			Name:         "Nomad Journal",
			Price:        "$55.00",
			ImageURL:     "https://images.unsplash.com/photo-1633766223834-3d9b4c3b1aa2?q=80&w=800&auto.format&fit=crop",
			CountInStock: 10,
		},
	}
}

// seedCatalog loads the starter products. With reset the existing catalog is
// removed first; cart lines pointing at removed products cascade away.
func seedCatalog(ctx context.Context, db txRunner, reset bool) (int, error) {
	products := starterCatalog()
	err := db.WithTx(ctx, func(tx *gorm.DB) error {
		if reset {
			if err := tx.WithContext(ctx).Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
				return fmt.Errorf("delete products: %w", err)
			}
		}
		if err := tx.WithContext(ctx).Create(&products).Error; err != nil {
			return fmt.Errorf("insert products: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}
