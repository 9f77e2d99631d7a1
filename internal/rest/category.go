package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	categoryService "youthBanking/business/category"
	"youthBanking/domain"
	"youthBanking/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]domain.QuestionCategory, error)
	CategoriesByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.CategoryWithCount, error)
	GetCategoryByID(ctx context.Context, id uint64) (domain.QuestionCategory, error)
	CreateCategory(ctx context.Context, category *domain.QuestionCategory) (*domain.QuestionCategory, error)
	UpdateCategory(ctx context.Context, category *domain.QuestionCategory) (*domain.QuestionCategory, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryHandler struct {
	categoryService CategoryService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func categoryErrorStatus(err error) int {
	switch {
	case errors.Is(err, categoryService.ErrInvalidCategoryID),
		errors.Is(err, categoryService.ErrNameRequired),
		errors.Is(err, categoryService.ErrInvalidDifficulty):
		return http.StatusBadRequest
	default:
		return notFoundStatus(err)
	}
}

func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get all categories",
		"categories": categories,
	})
}

// CategoriesByDifficulty serves the concept study picker.
func (h *CategoryHandler) CategoriesByDifficulty(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.CategoriesByDifficulty(ctx, domain.Difficulty(c.Param("difficulty")))
	if err != nil {
		return c.JSON(categoryErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get categories",
		"categories": categories,
	})
}

func (h *CategoryHandler) GetCategoryByID(c echo.Context) error {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return c.JSON(categoryErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get category",
		"category": category,
	})
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newCategory, err := h.categoryService.CreateCategory(ctx, &domain.QuestionCategory{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		logger.Error("Failed to create category", "error", err)
		return c.JSON(categoryErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "category successfully created",
		"category": newCategory,
	})
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.categoryService.UpdateCategory(ctx, &domain.QuestionCategory{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return c.JSON(categoryErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update category",
		"category": updated,
	})
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.DeleteCategory(ctx, categoryID); err != nil {
		return c.JSON(categoryErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "category successfully deleted",
		"category_id": categoryID,
	})
}
