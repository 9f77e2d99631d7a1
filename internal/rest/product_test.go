//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	productService "youthBanking/business/product"
	"youthBanking/domain"
)

type stubProductService struct {
	filter  domain.ProductFilter
	err     error
	syncErr error
}

func (s *stubProductService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	return []domain.Bank{{FinCoNo: "0010001", Name: "우리은행"}}, nil
}

func (s *stubProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.filter = filter
	return []domain.Product{}, s.err
}

func (s *stubProductService) GetProduct(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error) {
	return domain.Product{Kind: kind, Code: code}, s.err
}

func (s *stubProductService) SyncProducts(ctx context.Context) (domain.SyncResult, error) {
	return domain.SyncResult{Banks: 2, Deposits: 3, Savings: 4}, s.syncErr
}

func TestListProductsForwardsQuery(t *testing.T) {
	svc := &stubProductService{}
	h := NewProductHandler(svc)

	rec := serve(t, http.MethodGet, "/api/v1/products/deposit?bank=0010001&sort=max_rate", "", 0, h.ListProducts, "kind", "deposit")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	want := domain.ProductFilter{Kind: domain.ProductKindDeposit, BankCode: "0010001", SortBy: "max_rate"}
	if svc.filter != want {
		t.Fatalf("filter %+v, want %+v", svc.filter, want)
	}
}

func TestGetProductStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"found", nil, http.StatusOK},
		{"missing", domain.ErrProductNotFound, http.StatusNotFound},
		{"bad kind", productService.ErrInvalidProductKind, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProductHandler(&stubProductService{err: tt.err})

			rec := serve(t, http.MethodGet, "/api/v1/products/deposit/D1", "", 0, h.GetProduct, "kind", "deposit", "code", "D1")

			if rec.Code != tt.status {
				t.Fatalf("status %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestSyncProductsUpstreamFailure(t *testing.T) {
	h := NewProductHandler(&stubProductService{syncErr: errors.New("circuit breaker is open")})

	rec := serve(t, http.MethodPost, "/api/v1/products/sync", "", 1, h.SyncProducts)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status %d", rec.Code)
	}
}
