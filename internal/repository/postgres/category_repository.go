package postgres

import (
	"context"
	"errors"
	"fmt"
	"youthBanking/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.QuestionCategory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (domain.QuestionCategory, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuestionCategory{}, fmt.Errorf("context error: %w", err)
	}

	var category domain.QuestionCategory

	err := r.DB.WithContext(ctx).Where("category_id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.QuestionCategory{}, domain.ErrCategoryNotFound
		}
		return domain.QuestionCategory{}, fmt.Errorf("failed to find category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.QuestionCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.QuestionCategory
	err := r.DB.WithContext(ctx).Order("category_id").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.QuestionCategory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        category.Name,
		"description": category.Description,
	}

	result := r.DB.WithContext(ctx).Model(&domain.QuestionCategory{}).Where("category_id = ?", category.CategoryID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("category_id = ?", id).Delete(&domain.QuestionCategory{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// FindByDifficulty lists the categories that have questions at the given
// difficulty, with how many.
func (r *CategoryRepository) FindByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.CategoryWithCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.CategoryWithCount
	err := r.DB.WithContext(ctx).
		Table("question_categories qc").
		Select("qc.*, COUNT(q.id) AS question_count").
		Joins("JOIN questions q ON q.category_id = qc.category_id").
		Where("q.difficulty = ?", difficulty).
		Group("qc.category_id").
		Order("qc.category_id").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}
