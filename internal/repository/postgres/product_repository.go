package postgres

import (
	"context"
	"errors"
	"fmt"

	"youthBanking/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// UpsertBank inserts or refreshes a bank keyed by fin_co_no and fills in
// bank.ID.
func (r *ProductRepository) UpsertBank(ctx context.Context, bank *domain.Bank) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fin_co_no"}},
			DoUpdates: clause.AssignmentColumns([]string{"kor_co_nm", "sector_code", "sector_name", "updated_at"}),
		}).
		Create(bank).Error
	if err != nil {
		return fmt.Errorf("failed to upsert bank: %w", err)
	}

	if bank.ID == 0 {
		if err := r.DB.WithContext(ctx).Where("fin_co_no = ?", bank.FinCoNo).Take(bank).Error; err != nil {
			return fmt.Errorf("failed to reload bank: %w", err)
		}
	}

	return nil
}

func (r *ProductRepository) UpsertProduct(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Omit("Bank").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "kind"}, {Name: "fin_prdt_cd"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"fin_prdt_nm",
				"bank_id",
				"join_way",
				"mtrt_int",
				"spcl_cnd",
				"dcls_month",
				"options",
				"max_rate",
				"updated_at",
			}),
		}).
		Create(product).Error
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindBanks(ctx context.Context) ([]domain.Bank, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var banks []domain.Bank
	if err := r.DB.WithContext(ctx).Order("kor_co_nm").Find(&banks).Error; err != nil {
		return nil, fmt.Errorf("failed to find banks: %w", err)
	}

	return banks, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Preload("Bank").Where("products.kind = ?", filter.Kind)
	if filter.BankCode != "" {
		q = q.Joins("JOIN banks b ON b.id = products.bank_id").Where("b.fin_co_no = ?", filter.BankCode)
	}

	switch filter.SortBy {
	case "name":
		q = q.Order("products.fin_prdt_nm")
	default:
		q = q.Order("products.max_rate DESC").Order("products.fin_prdt_cd")
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindByCode(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product
	err := r.DB.WithContext(ctx).Preload("Bank").
		Where("kind = ? AND fin_prdt_cd = ?", kind, code).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

type metadataRow struct {
	Code     string
	Name     string
	BankName string
	Options  []byte
}

// FindMetadata returns display data keyed by product code. Unknown codes are
// simply absent from the map.
func (r *ProductRepository) FindMetadata(ctx context.Context, codes []string, kind domain.ProductKind) (map[string]domain.ProductMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	out := make(map[string]domain.ProductMetadata, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	var rows []metadataRow
	err := r.DB.WithContext(ctx).
		Table("products p").
		Select("p.fin_prdt_cd AS code, p.fin_prdt_nm AS name, b.kor_co_nm AS bank_name, p.options AS options").
		Joins("JOIN banks b ON b.id = p.bank_id").
		Where("p.kind = ? AND p.fin_prdt_cd IN ?", kind, codes).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product metadata: %w", err)
	}

	for _, row := range rows {
		out[row.Code] = domain.ProductMetadata{
			Code:     row.Code,
			Name:     row.Name,
			BankName: row.BankName,
			Options:  row.Options,
		}
	}

	return out, nil
}
