package product

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"youthBanking/domain"
	"youthBanking/internal/repository/finlife"
	"youthBanking/pkg/logger"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// maxPages guards against a misreported max_page_no.
const maxPages = 100

// ProductRepository contract interface
type ProductRepository interface {
	UpsertBank(ctx context.Context, bank *domain.Bank) error
	UpsertProduct(ctx context.Context, product *domain.Product) error
	FindBanks(ctx context.Context) ([]domain.Bank, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindByCode(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error)
}

// FinlifeClient contract interface
type FinlifeClient interface {
	FetchPage(ctx context.Context, kind domain.ProductKind, pageNo int) (*finlife.Page, error)
}

var (
	ErrInvalidProductKind = errors.New("invalid product kind")
	ErrInvalidSort        = errors.New("sort must be max_rate or name")
)

type productService struct {
	productRepo ProductRepository
	finlife     FinlifeClient
}

func NewProductService(productRepo ProductRepository, finlifeClient FinlifeClient) *productService {
	return &productService{
		productRepo: productRepo,
		finlife:     finlifeClient,
	}
}

func (s *productService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	banks, err := s.productRepo.FindBanks(ctx)
	if err != nil {
		logger.Error("Failed to find banks", "error", err)
		return nil, err
	}

	return banks, nil
}

func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if !filter.Kind.Valid() {
		return nil, ErrInvalidProductKind
	}

	switch filter.SortBy {
	case "", "max_rate", "name":
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSort, filter.SortBy)
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to find products", "kind", filter.Kind, "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error) {
	if !kind.Valid() {
		return domain.Product{}, ErrInvalidProductKind
	}

	return s.productRepo.FindByCode(ctx, kind, code)
}

// SyncProducts pulls every deposit and saving product from finlife and
// upserts them. Both kinds are fetched concurrently; writes are serialized so
// a bank shared by both lists is only inserted once.
func (s *productService) SyncProducts(ctx context.Context) (domain.SyncResult, error) {
	start := time.Now()
	pages := make([][]*finlife.Page, len(domain.ProductKinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.ProductKinds {
		g.Go(func() error {
			fetched, err := s.fetchAll(gctx, kind)
			if err != nil {
				return fmt.Errorf("fetch %s products: %w", kind, err)
			}
			pages[i] = fetched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Failed to fetch finlife products", "error", err)
		return domain.SyncResult{}, err
	}

	var result domain.SyncResult
	banks := map[string]uint{}

	for i, kind := range domain.ProductKinds {
		n, err := s.store(ctx, kind, pages[i], banks)
		if err != nil {
			logger.Error("Failed to store finlife products", "kind", kind, "error", err)
			return domain.SyncResult{}, err
		}
		if kind == domain.ProductKindDeposit {
			result.Deposits = n
		} else {
			result.Savings = n
		}
	}
	result.Banks = len(banks)

	logger.Info("finlife_sync_done",
		"banks", result.Banks,
		"deposits", result.Deposits,
		"savings", result.Savings,
		"elapsed", time.Since(start).String(),
	)

	return result, nil
}

func (s *productService) fetchAll(ctx context.Context, kind domain.ProductKind) ([]*finlife.Page, error) {
	first, err := s.finlife.FetchPage(ctx, kind, 1)
	if err != nil {
		return nil, err
	}

	out := []*finlife.Page{first}
	last := min(first.MaxPageNo, maxPages)
	for pageNo := 2; pageNo <= last; pageNo++ {
		page, err := s.finlife.FetchPage(ctx, kind, pageNo)
		if err != nil {
			return nil, err
		}
		out = append(out, page)
	}

	return out, nil
}

func (s *productService) store(ctx context.Context, kind domain.ProductKind, pages []*finlife.Page, banks map[string]uint) (int, error) {
	options := map[string][]domain.ProductOption{}
	for _, p := range pages {
		for _, o := range p.OptionList {
			options[o.FinPrdtCd] = append(options[o.FinPrdtCd], domain.ProductOption{
				SaveTerm:        o.SaveTrm,
				RateType:        o.IntrRateType,
				RateTypeName:    o.IntrRateTypeNm,
				Rate:            o.IntrRate,
				MaxRate:         o.IntrRate2,
				ReserveType:     o.RsrvType,
				ReserveTypeName: o.RsrvTypeNm,
			})
		}
	}

	seen := map[string]struct{}{}
	for _, p := range pages {
		for _, base := range p.BaseList {
			if _, dup := seen[base.FinPrdtCd]; dup {
				continue
			}
			seen[base.FinPrdtCd] = struct{}{}

			bankID, ok := banks[base.FinCoNo]
			if !ok {
				bank := &domain.Bank{FinCoNo: base.FinCoNo, Name: base.KorCoNm}
				if err := s.productRepo.UpsertBank(ctx, bank); err != nil {
					return 0, err
				}
				bankID = bank.ID
				banks[base.FinCoNo] = bankID
			}

			opts := options[base.FinPrdtCd]
			sortOptions(opts)
			raw, err := json.Marshal(opts)
			if err != nil {
				return 0, fmt.Errorf("failed to encode options: %w", err)
			}

			product := &domain.Product{
				Kind:             kind,
				Code:             base.FinPrdtCd,
				Name:             base.FinPrdtNm,
				BankID:           bankID,
				JoinWay:          base.JoinWay,
				MaturityInterest: base.MaturityInterest,
				SpecialCondition: base.SpecialCondition,
				DisclosureMonth:  base.DisclosureMonth,
				Options:          datatypes.JSON(raw),
				MaxRate:          MaxRate(opts),
			}
			if err := s.productRepo.UpsertProduct(ctx, product); err != nil {
				return 0, err
			}
		}
	}

	return len(seen), nil
}

// MaxRate is the highest base rate across the options, ignoring unpublished
// rates.
func MaxRate(opts []domain.ProductOption) float64 {
	best := 0.0
	for _, o := range opts {
		if o.Rate != nil && *o.Rate > best {
			best = *o.Rate
		}
	}
	return best
}

func sortOptions(opts []domain.ProductOption) {
	sort.SliceStable(opts, func(i, j int) bool {
		return termMonths(opts[i].SaveTerm) < termMonths(opts[j].SaveTerm)
	})
}

func termMonths(term string) int {
	n := 0
	for _, r := range term {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
