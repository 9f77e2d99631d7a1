//go:build !integration

package metal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"youthBanking/domain"
)

type memPrices struct {
	stored []domain.MetalPrice
	err    error
}

func (m *memPrices) FindAll(ctx context.Context, filter domain.MetalPriceFilter) ([]domain.MetalPrice, error) {
	return m.stored, nil
}

func (m *memPrices) ReplaceAll(ctx context.Context, prices []domain.MetalPrice) error {
	if m.err != nil {
		return m.err
	}
	m.stored = prices
	return nil
}

func TestParsePrices(t *testing.T) {
	input := "\ufeffDate,Close/Last,Volume\n" +
		"2024.05.03,\"2,310.10\",100\n" +
		"2024-05-02,2301.5,90\n" +
		"05/01/2024,$2290.00,80\n" +
		"yesterday,2000,1\n" +
		"2024.04.30,0,1\n" +
		"2024.04.29,N/A,1\n" +
		"2024.05.03,2311.00,100\n"

	prices, skipped, err := ParsePrices(strings.NewReader(input), domain.MetalGold)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", skipped)
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 prices, got %+v", prices)
	}

	first := prices[0]
	if !first.Date.Equal(time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)) || first.Price != 2311.00 || first.MetalType != domain.MetalGold {
		t.Fatalf("unexpected first price %+v", first)
	}
	if !prices[2].Date.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) || prices[2].Price != 2290 {
		t.Fatalf("unexpected US-format row %+v", prices[2])
	}
}

func TestParsePricesMissingColumn(t *testing.T) {
	if _, _, err := ParsePrices(strings.NewReader("Date,Open\n2024.05.03,1\n"), domain.MetalSilver); err == nil {
		t.Fatal("expected error for missing Close/Last column")
	}
}

func TestLoadFromCSV(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("Gold_prices.csv", "Date,Close/Last\n2024.05.03,2310.1\n2024.05.02,2301.5\n")
	write("Silver_prices.csv", "Date,Close/Last\n2024.05.03,26.7\n")

	repo := &memPrices{}
	res, err := NewMetalService(repo, dir).LoadFromCSV(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Gold != 2 || res.Silver != 1 || len(repo.stored) != 3 {
		t.Fatalf("unexpected load result %+v, stored %d", res, len(repo.stored))
	}
}

func TestLoadFromCSVMissingFileKeepsData(t *testing.T) {
	repo := &memPrices{stored: []domain.MetalPrice{{MetalType: domain.MetalGold, Price: 1}}}

	if _, err := NewMetalService(repo, t.TempDir()).LoadFromCSV(context.Background()); err == nil {
		t.Fatal("expected error for missing files")
	}
	if len(repo.stored) != 1 {
		t.Fatal("existing prices should be untouched")
	}
}

func TestListPricesValidation(t *testing.T) {
	svc := NewMetalService(&memPrices{}, "")
	ctx := context.Background()

	if _, err := svc.ListPrices(ctx, domain.MetalPriceFilter{MetalType: "platinum"}); !errors.Is(err, ErrInvalidMetal) {
		t.Fatalf("expected ErrInvalidMetal, got %v", err)
	}

	from := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	if _, err := svc.ListPrices(ctx, domain.MetalPriceFilter{From: &from, To: &to}); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
