package postgres

import (
	"context"
	"fmt"

	"youthBanking/domain"

	"gorm.io/gorm"
)

type MetalPriceRepository struct {
	DB *gorm.DB
}

func NewMetalPriceRepository(db *gorm.DB) *MetalPriceRepository {
	return &MetalPriceRepository{
		DB: db,
	}
}

func (r *MetalPriceRepository) FindAll(ctx context.Context, filter domain.MetalPriceFilter) ([]domain.MetalPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx)
	if filter.MetalType != "" {
		q = q.Where("metal_type = ?", filter.MetalType)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}

	var prices []domain.MetalPrice
	if err := q.Order("date").Order("metal_type").Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("failed to find metal prices: %w", err)
	}

	return prices, nil
}

// ReplaceAll swaps the whole price table for prices in one transaction.
func (r *MetalPriceRepository) ReplaceAll(ctx context.Context, prices []domain.MetalPrice) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.MetalPrice{}).Error; err != nil {
			return fmt.Errorf("failed to clear metal prices: %w", err)
		}
		if len(prices) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(prices, 500).Error; err != nil {
			return fmt.Errorf("failed to insert metal prices: %w", err)
		}
		return nil
	})
}
