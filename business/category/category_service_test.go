//go:build !integration

package category

import (
	"context"
	"errors"
	"testing"

	"youthBanking/domain"
)

type memCategories struct {
	rows   map[uint64]domain.QuestionCategory
	nextID uint64
}

func newMemCategories() *memCategories {
	return &memCategories{rows: map[uint64]domain.QuestionCategory{}}
}

func (m *memCategories) Create(ctx context.Context, category *domain.QuestionCategory) error {
	m.nextID++
	category.CategoryID = m.nextID
	m.rows[category.CategoryID] = *category
	return nil
}

func (m *memCategories) FindByID(ctx context.Context, id uint64) (domain.QuestionCategory, error) {
	c, ok := m.rows[id]
	if !ok {
		return domain.QuestionCategory{}, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (m *memCategories) FindAll(ctx context.Context) ([]domain.QuestionCategory, error) {
	out := make([]domain.QuestionCategory, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategories) FindByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.CategoryWithCount, error) {
	return []domain.CategoryWithCount{}, nil
}

func (m *memCategories) Update(ctx context.Context, category *domain.QuestionCategory) error {
	m.rows[category.CategoryID] = *category
	return nil
}

func (m *memCategories) Delete(ctx context.Context, id uint64) error {
	delete(m.rows, id)
	return nil
}

func TestCategoryLifecycle(t *testing.T) {
	repo := newMemCategories()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &domain.QuestionCategory{CategoryID: 99, Name: "  금융 기초  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CategoryID != 1 || created.Name != "금융 기초" {
		t.Fatalf("unexpected category %+v", created)
	}

	updated, err := svc.UpdateCategory(ctx, &domain.QuestionCategory{CategoryID: 1, Name: "저축", Description: "예금과 적금"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "저축" || updated.Description != "예금과 적금" {
		t.Fatalf("unexpected update %+v", updated)
	}

	if err := svc.DeleteCategory(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetCategoryByID(ctx, 1); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryValidation(t *testing.T) {
	svc := NewCategoryService(newMemCategories())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, &domain.QuestionCategory{Name: "   "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("blank name: got %v", err)
	}
	if _, err := svc.UpdateCategory(ctx, &domain.QuestionCategory{Name: "x"}); !errors.Is(err, ErrInvalidCategoryID) {
		t.Fatalf("zero id: got %v", err)
	}
	if _, err := svc.UpdateCategory(ctx, &domain.QuestionCategory{CategoryID: 5, Name: "x"}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("missing: got %v", err)
	}
	if err := svc.DeleteCategory(ctx, 0); !errors.Is(err, ErrInvalidCategoryID) {
		t.Fatalf("delete zero: got %v", err)
	}
	if _, err := svc.CategoriesByDifficulty(ctx, "expert"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("difficulty: got %v", err)
	}
}
