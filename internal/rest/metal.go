package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	metalService "youthBanking/business/metal"
	"youthBanking/domain"
	"youthBanking/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type MetalService interface {
	ListPrices(ctx context.Context, filter domain.MetalPriceFilter) ([]domain.MetalPrice, error)
	LoadFromCSV(ctx context.Context) (domain.MetalLoadResult, error)
}

type MetalHandler struct {
	metalService MetalService
	timeout      time.Duration
}

func NewMetalHandler(metalService MetalService) *MetalHandler {
	return &MetalHandler{
		metalService: metalService,
		timeout:      10 * time.Second,
	}
}

func parseDateQuery(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListPrices serves /metal-prices?metal=&from=&to=
func (h *MetalHandler) ListPrices(c echo.Context) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid from date, expected YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid to date, expected YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prices, err := h.metalService.ListPrices(ctx, domain.MetalPriceFilter{
		MetalType: c.QueryParam("metal"),
		From:      from,
		To:        to,
	})
	if err != nil {
		if errors.Is(err, metalService.ErrInvalidMetal) || errors.Is(err, metalService.ErrInvalidRange) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(prices))
}

// LoadPrices reloads the CSV exports. Admin only.
func (h *MetalHandler) LoadPrices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Minute)
	defer cancel()

	result, err := h.metalService.LoadFromCSV(ctx)
	if err != nil {
		logger.Error("Failed to load metal prices", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Metal prices loaded successfully",
		"result":  result,
	})
}
