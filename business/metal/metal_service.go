package metal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
)

const (
	dateColumn  = "Date"
	priceColumn = "Close/Last"
)

var dateLayouts = []string{"2006.01.02", "2006-01-02", "01/02/2006"}

var sources = map[string]string{
	domain.MetalGold:   "Gold_prices.csv",
	domain.MetalSilver: "Silver_prices.csv",
}

// MetalPriceRepository contract interface
type MetalPriceRepository interface {
	FindAll(ctx context.Context, filter domain.MetalPriceFilter) ([]domain.MetalPrice, error)
	ReplaceAll(ctx context.Context, prices []domain.MetalPrice) error
}

var (
	ErrInvalidMetal = errors.New("metal type must be gold or silver")
	ErrInvalidRange = errors.New("start date is after end date")
)

type metalService struct {
	repo    MetalPriceRepository
	dataDir string
}

func NewMetalService(repo MetalPriceRepository, dataDir string) *metalService {
	return &metalService{
		repo:    repo,
		dataDir: dataDir,
	}
}

func (s *metalService) ListPrices(ctx context.Context, filter domain.MetalPriceFilter) ([]domain.MetalPrice, error) {
	if filter.MetalType != "" && filter.MetalType != domain.MetalGold && filter.MetalType != domain.MetalSilver {
		return nil, ErrInvalidMetal
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, ErrInvalidRange
	}

	prices, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to list metal prices", "error", err)
		return nil, err
	}

	return prices, nil
}

// LoadFromCSV replaces every stored price with the contents of the gold and
// silver CSV exports in the data directory.
func (s *metalService) LoadFromCSV(ctx context.Context) (domain.MetalLoadResult, error) {
	var (
		all    []domain.MetalPrice
		result domain.MetalLoadResult
	)

	for _, metal := range []string{domain.MetalGold, domain.MetalSilver} {
		path := filepath.Join(s.dataDir, sources[metal])
		prices, skipped, err := readPricesFile(path, metal)
		if err != nil {
			logger.Error("Failed to read metal prices", "path", path, "error", err)
			return domain.MetalLoadResult{}, err
		}
		if skipped > 0 {
			logger.Warn("Skipped unusable metal price rows", "metal", metal, "skipped", skipped)
		}

		if metal == domain.MetalGold {
			result.Gold = len(prices)
		} else {
			result.Silver = len(prices)
		}
		all = append(all, prices...)
	}

	if err := s.repo.ReplaceAll(ctx, all); err != nil {
		logger.Error("Failed to store metal prices", "error", err)
		return domain.MetalLoadResult{}, err
	}

	logger.Info("metal prices loaded", "gold", result.Gold, "silver", result.Silver)

	return result, nil
}

func readPricesFile(path, metal string) ([]domain.MetalPrice, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	return ParsePrices(f, metal)
}

// ParsePrices reads a price export. Rows with an unreadable date or a
// non-positive price are skipped and counted; a later row for the same date
// wins.
func ParsePrices(r io.Reader, metal string) ([]domain.MetalPrice, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	dateIdx, priceIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case dateColumn:
			dateIdx = i
		case priceColumn:
			priceIdx = i
		}
	}
	if dateIdx < 0 || priceIdx < 0 {
		return nil, 0, fmt.Errorf("missing %q or %q column", dateColumn, priceColumn)
	}

	byDate := map[time.Time]int{}
	prices := []domain.MetalPrice{}
	skipped := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) <= dateIdx || len(record) <= priceIdx {
			skipped++
			continue
		}

		date, ok := parseDate(record[dateIdx])
		if !ok {
			skipped++
			continue
		}
		price, ok := parsePrice(record[priceIdx])
		if !ok {
			skipped++
			continue
		}

		if i, dup := byDate[date]; dup {
			prices[i].Price = price
			continue
		}
		byDate[date] = len(prices)
		prices = append(prices, domain.MetalPrice{MetalType: metal, Date: date, Price: price})
	}

	return prices, skipped, nil
}

func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parsePrice(v string) (float64, bool) {
	v = strings.TrimSpace(strings.TrimPrefix(strings.ReplaceAll(v, ",", ""), "$"))
	p, err := strconv.ParseFloat(v, 64)
	if err != nil || p <= 0 {
		return 0, false
	}
	return p, true
}
