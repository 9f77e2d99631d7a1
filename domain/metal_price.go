package domain

import "time"

const (
	MetalGold   = "gold"
	MetalSilver = "silver"
)

type MetalPrice struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	MetalType string    `gorm:"column:metal_type;size:10;uniqueIndex:idx_metal_prices_type_date;not null" json:"metal_type"`
	Date      time.Time `gorm:"column:date;type:date;uniqueIndex:idx_metal_prices_type_date;not null" json:"date"`
	Price     float64   `gorm:"column:price;not null" json:"price"`
}

func (MetalPrice) TableName() string {
	return "metal_prices"
}

type MetalPriceFilter struct {
	MetalType string
	From      *time.Time
	To        *time.Time
}

type MetalLoadResult struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
}
