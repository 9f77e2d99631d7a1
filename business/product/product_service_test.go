//go:build !integration

package product

import (
	"context"
	"errors"
	"sync"
	"testing"

	"youthBanking/domain"
	"youthBanking/internal/repository/finlife"

	"github.com/goccy/go-json"
)

type memProducts struct {
	mu       sync.Mutex
	banks    map[string]*domain.Bank
	products map[string]domain.Product
	bankUps  int
}

func newMemProducts() *memProducts {
	return &memProducts{banks: map[string]*domain.Bank{}, products: map[string]domain.Product{}}
}

func (m *memProducts) UpsertBank(ctx context.Context, bank *domain.Bank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bankUps++
	if b, ok := m.banks[bank.FinCoNo]; ok {
		bank.ID = b.ID
		b.Name = bank.Name
		return nil
	}
	bank.ID = uint(len(m.banks) + 1)
	cp := *bank
	m.banks[bank.FinCoNo] = &cp
	return nil
}

func (m *memProducts) UpsertProduct(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[string(p.Kind)+"/"+p.Code] = *p
	return nil
}

func (m *memProducts) FindBanks(ctx context.Context) ([]domain.Bank, error) {
	out := []domain.Bank{}
	for _, b := range m.banks {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memProducts) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range m.products {
		if p.Kind == filter.Kind {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) FindByCode(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error) {
	p, ok := m.products[string(kind)+"/"+code]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

type fakeFinlife struct {
	mu    sync.Mutex
	pages map[domain.ProductKind][]*finlife.Page
	fail  domain.ProductKind
	calls map[domain.ProductKind]int
}

func (f *fakeFinlife) FetchPage(ctx context.Context, kind domain.ProductKind, pageNo int) (*finlife.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++
	if kind == f.fail {
		return nil, errors.New("finlife unavailable")
	}
	return f.pages[kind][pageNo-1], nil
}

func rate(v float64) *float64 { return &v }

func finlifeFixture() *fakeFinlife {
	return &fakeFinlife{
		calls: map[domain.ProductKind]int{},
		pages: map[domain.ProductKind][]*finlife.Page{
			domain.ProductKindDeposit: {
				{
					MaxPageNo: 2,
					BaseList: []finlife.BaseItem{
						{FinCoNo: "0010001", KorCoNm: "우리은행", FinPrdtCd: "WR0001B", FinPrdtNm: "WON플러스예금"},
					},
					OptionList: []finlife.OptionItem{
						{FinPrdtCd: "WR0001B", SaveTrm: "24", IntrRate: rate(3.2)},
						{FinPrdtCd: "WR0001B", SaveTrm: "12", IntrRate: rate(3.55)},
						{FinPrdtCd: "WR0001B", SaveTrm: "6", IntrRate: nil},
					},
				},
				{
					MaxPageNo: 2,
					BaseList: []finlife.BaseItem{
						{FinCoNo: "0010927", KorCoNm: "국민은행", FinPrdtCd: "KB0001", FinPrdtNm: "KB Star 정기예금"},
					},
				},
			},
			domain.ProductKindSaving: {
				{
					MaxPageNo: 1,
					BaseList: []finlife.BaseItem{
						{FinCoNo: "0010001", KorCoNm: "우리은행", FinPrdtCd: "WR0001F", FinPrdtNm: "우리SUPER주거래적금"},
					},
					OptionList: []finlife.OptionItem{
						{FinPrdtCd: "WR0001F", SaveTrm: "12", RsrvType: "S", IntrRate: rate(3.0)},
					},
				},
			},
		},
	}
}

func TestSyncProducts(t *testing.T) {
	repo := newMemProducts()
	client := finlifeFixture()
	svc := NewProductService(repo, client)

	res, err := svc.SyncProducts(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	if res.Deposits != 2 || res.Savings != 1 || res.Banks != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if client.calls[domain.ProductKindDeposit] != 2 || client.calls[domain.ProductKindSaving] != 1 {
		t.Fatalf("unexpected page calls %v", client.calls)
	}
	if repo.bankUps != 2 {
		t.Fatalf("shared bank should be upserted once, got %d upserts", repo.bankUps)
	}

	p := repo.products["deposit/WR0001B"]
	if p.MaxRate != 3.55 {
		t.Fatalf("expected max rate 3.55, got %v", p.MaxRate)
	}
	var opts []domain.ProductOption
	if err := json.Unmarshal(p.Options, &opts); err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(opts) != 3 || opts[0].SaveTerm != "6" || opts[2].SaveTerm != "24" {
		t.Fatalf("options should be grouped and ordered by term, got %+v", opts)
	}
	if repo.products["deposit/KB0001"].MaxRate != 0 {
		t.Fatal("product without options should have max rate 0")
	}
}

func TestSyncProductsFailsWhenAKindFails(t *testing.T) {
	repo := newMemProducts()
	client := finlifeFixture()
	client.fail = domain.ProductKindSaving

	if _, err := NewProductService(repo, client).SyncProducts(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.products) != 0 {
		t.Fatalf("nothing should be written on fetch failure, got %d", len(repo.products))
	}
}

func TestListProductsValidation(t *testing.T) {
	svc := NewProductService(newMemProducts(), finlifeFixture())
	ctx := context.Background()

	if _, err := svc.ListProducts(ctx, domain.ProductFilter{Kind: "loan"}); !errors.Is(err, ErrInvalidProductKind) {
		t.Fatalf("expected invalid kind, got %v", err)
	}
	if _, err := svc.ListProducts(ctx, domain.ProductFilter{Kind: domain.ProductKindDeposit, SortBy: "popularity"}); !errors.Is(err, ErrInvalidSort) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
	if _, err := svc.GetProduct(ctx, domain.ProductKindSaving, "NOPE"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMaxRateIgnoresMissingRates(t *testing.T) {
	opts := []domain.ProductOption{{Rate: nil}, {Rate: rate(2.1)}, {Rate: rate(1.9)}}
	if got := MaxRate(opts); got != 2.1 {
		t.Fatalf("expected 2.1, got %v", got)
	}
}
