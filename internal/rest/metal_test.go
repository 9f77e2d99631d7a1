//go:build !integration

package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"youthBanking/domain"
)

type stubMetalService struct {
	filter domain.MetalPriceFilter
}

func (s *stubMetalService) ListPrices(ctx context.Context, filter domain.MetalPriceFilter) ([]domain.MetalPrice, error) {
	s.filter = filter
	return []domain.MetalPrice{}, nil
}

func (s *stubMetalService) LoadFromCSV(ctx context.Context) (domain.MetalLoadResult, error) {
	return domain.MetalLoadResult{Gold: 1, Silver: 1}, nil
}

func TestListPricesParsesDates(t *testing.T) {
	svc := &stubMetalService{}
	h := NewMetalHandler(svc)

	rec := serve(t, http.MethodGet, "/api/v1/metal-prices?metal=gold&from=2024-01-02&to=2024-02-01", "", 0, h.ListPrices)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if svc.filter.MetalType != domain.MetalGold {
		t.Fatalf("metal %q", svc.filter.MetalType)
	}
	if svc.filter.From == nil || !svc.filter.From.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from %v", svc.filter.From)
	}
	if svc.filter.To == nil {
		t.Fatal("to not parsed")
	}
}

func TestListPricesRejectsBadDate(t *testing.T) {
	h := NewMetalHandler(&stubMetalService{})

	rec := serve(t, http.MethodGet, "/api/v1/metal-prices?from=02/01/2024", "", 0, h.ListPrices)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}
