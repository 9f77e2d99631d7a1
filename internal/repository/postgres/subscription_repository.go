package postgres

import (
	"context"
	"fmt"

	"youthBanking/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		DB: db,
	}
}

// Create is idempotent on (user, kind, product).
func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}, {Name: "product_code"}},
			DoNothing: true,
		}).
		Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID uint, kind domain.ProductKind, code string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND product_code = ?", userID, kind, code).
		Delete(&domain.Subscription{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepository) FindByUsers(ctx context.Context, userIDs []uint, kind domain.ProductKind) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(userIDs) == 0 {
		return []domain.Subscription{}, nil
	}

	var subs []domain.Subscription
	err := r.DB.WithContext(ctx).
		Where("user_id IN ? AND kind = ?", userIDs, kind).
		Order("id").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find subscriptions: %w", err)
	}

	return subs, nil
}

// FindProducts returns the catalog rows a user is subscribed to.
func (r *SubscriptionRepository) FindProducts(ctx context.Context, userID uint, kind domain.ProductKind) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Preload("Bank").
		Joins("JOIN subscriptions s ON s.product_code = products.fin_prdt_cd AND s.kind = products.kind").
		Where("s.user_id = ? AND products.kind = ?", userID, kind).
		Order("s.created_at").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find subscribed products: %w", err)
	}

	return products, nil
}
