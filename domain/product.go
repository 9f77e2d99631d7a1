package domain

import (
	"time"

	"gorm.io/datatypes"
)

type ProductKind string

const (
	ProductKindDeposit ProductKind = "deposit"
	ProductKindSaving  ProductKind = "saving"
)

// ProductKinds lists every kind in the order results are merged.
var ProductKinds = []ProductKind{ProductKindDeposit, ProductKindSaving}

func (k ProductKind) Valid() bool {
	return k == ProductKindDeposit || k == ProductKindSaving
}

type Bank struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FinCoNo    string    `gorm:"column:fin_co_no;size:20;uniqueIndex;not null" json:"fin_co_no"`
	Name       string    `gorm:"column:kor_co_nm;size:100;not null" json:"kor_co_nm"`
	SectorCode string    `gorm:"column:sector_code;size:20" json:"sector_code,omitempty"`
	SectorName string    `gorm:"column:sector_name;size:50" json:"sector_name,omitempty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (Bank) TableName() string {
	return "banks"
}

// Product is a deposit or saving product as published by the finlife API.
// Options holds the raw per-term rate list.
type Product struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Kind             ProductKind    `gorm:"column:kind;size:10;uniqueIndex:idx_products_kind_code;not null" json:"kind"`
	Code             string         `gorm:"column:fin_prdt_cd;size:100;uniqueIndex:idx_products_kind_code;not null" json:"fin_prdt_cd"`
	Name             string         `gorm:"column:fin_prdt_nm;size:200;not null" json:"fin_prdt_nm"`
	BankID           uint           `gorm:"column:bank_id;index;not null" json:"bank_id"`
	Bank             Bank           `gorm:"foreignKey:BankID" json:"bank"`
	JoinWay          string         `gorm:"column:join_way;size:200" json:"join_way"`
	MaturityInterest string         `gorm:"column:mtrt_int;type:text" json:"mtrt_int"`
	SpecialCondition string         `gorm:"column:spcl_cnd;type:text" json:"spcl_cnd"`
	DisclosureMonth  string         `gorm:"column:dcls_month;size:10" json:"dcls_month"`
	Options          datatypes.JSON `gorm:"column:options" json:"options"`
	MaxRate          float64        `gorm:"column:max_rate;default:0" json:"max_rate"`
	CreatedAt        time.Time      `json:"-"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductOption is one savings term of a product. Rates may be unpublished.
type ProductOption struct {
	SaveTerm        string   `json:"save_trm"`
	RateType        string   `json:"intr_rate_type"`
	RateTypeName    string   `json:"intr_rate_type_nm"`
	Rate            *float64 `json:"intr_rate"`
	MaxRate         *float64 `json:"intr_rate2"`
	ReserveType     string   `json:"rsrv_type,omitempty"`
	ReserveTypeName string   `json:"rsrv_type_nm,omitempty"`
}

// Subscription records that a user holds a product. At most one row per
// (user, kind, product).
type Subscription struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"column:user_id;uniqueIndex:idx_subscriptions_user_product;not null" json:"user_id"`
	Kind        ProductKind `gorm:"column:kind;size:10;uniqueIndex:idx_subscriptions_user_product;index:idx_subscriptions_kind_code;not null" json:"kind"`
	ProductCode string      `gorm:"column:product_code;size:100;uniqueIndex:idx_subscriptions_user_product;index:idx_subscriptions_kind_code;not null" json:"product_code"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// ProductMetadata is the display data joined onto a recommendation.
type ProductMetadata struct {
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	BankName string         `json:"bank_name"`
	Options  datatypes.JSON `json:"options"`
}

type ProductFilter struct {
	Kind     ProductKind
	BankCode string
	SortBy   string
}

type SyncResult struct {
	Banks    int `json:"banks"`
	Deposits int `json:"deposits"`
	Savings  int `json:"savings"`
}
