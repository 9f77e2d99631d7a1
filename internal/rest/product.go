package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	productService "youthBanking/business/product"
	"youthBanking/domain"
	"youthBanking/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	ListBanks(ctx context.Context) ([]domain.Bank, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error)
	SyncProducts(ctx context.Context) (domain.SyncResult, error)
}

type ProductHandler struct {
	productService ProductService
	timeout        time.Duration
	syncTimeout    time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		timeout:        10 * time.Second,
		syncTimeout:    2 * time.Minute,
	}
}

func (h *ProductHandler) ListBanks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	banks, err := h.productService.ListBanks(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(banks))
}

// ListProducts serves /products/:kind?bank=&sort=
func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.ListProducts(ctx, domain.ProductFilter{
		Kind:     domain.ProductKind(c.Param("kind")),
		BankCode: c.QueryParam("bank"),
		SortBy:   c.QueryParam("sort"),
	})
	if err != nil {
		if errors.Is(err, productService.ErrInvalidProductKind) || errors.Is(err, productService.ErrInvalidSort) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProduct(ctx, domain.ProductKind(c.Param("kind")), c.Param("code"))
	if err != nil {
		if errors.Is(err, productService.ErrInvalidProductKind) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(notFoundStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// SyncProducts refreshes the catalogue from finlife. Admin only.
func (h *ProductHandler) SyncProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.syncTimeout)
	defer cancel()

	result, err := h.productService.SyncProducts(ctx)
	if err != nil {
		logger.Error("Failed to sync products", "error", err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Products synchronized successfully",
		"result":  result,
	})
}
