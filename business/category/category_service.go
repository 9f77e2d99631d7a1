package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.QuestionCategory) error
	FindByID(ctx context.Context, id uint64) (domain.QuestionCategory, error)
	FindAll(ctx context.Context) ([]domain.QuestionCategory, error)
	FindByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.CategoryWithCount, error)
	Update(ctx context.Context, category *domain.QuestionCategory) error
	Delete(ctx context.Context, id uint64) error
}

var (
	ErrInvalidCategoryID = errors.New("invalid category id")
	ErrNameRequired      = errors.New("category name is required")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.QuestionCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", "error", err)
		return nil, err
	}

	return categories, nil
}

// CategoriesByDifficulty lists the categories that have at least one
// question at the given difficulty.
func (s *categoryService) CategoriesByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.CategoryWithCount, error) {
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	categories, err := s.categoryRepo.FindByDifficulty(ctx, difficulty)
	if err != nil {
		logger.Error("Failed to find categories by difficulty", "difficulty", difficulty, "error", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.QuestionCategory, error) {
	if id == 0 {
		return domain.QuestionCategory{}, ErrInvalidCategoryID
	}

	return s.categoryRepo.FindByID(ctx, id)
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.QuestionCategory) (*domain.QuestionCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	category.CategoryID = 0
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("Failed to create category", "error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("category created", "category_id", category.CategoryID)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.QuestionCategory) (*domain.QuestionCategory, error) {
	if category.CategoryID == 0 {
		return nil, ErrInvalidCategoryID
	}

	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.categoryRepo.FindByID(ctx, category.CategoryID); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("Failed to update category", "category_id", category.CategoryID, "error", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	updated, err := s.categoryRepo.FindByID(ctx, category.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated category: %w", err)
	}

	return &updated, nil
}

// DeleteCategory removes the category; its questions stay, uncategorized.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if id == 0 {
		return ErrInvalidCategoryID
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete category", "category_id", id, "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("category deleted", "category_id", id)

	return nil
}
