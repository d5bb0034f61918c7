package models

import "github.com/shopspring/decimal"

// LowStockCondition is the SQL form of Product.IsLowStock, shared by the
// report queries.
const LowStockCondition = "products.quantity <= products.min_quantity AND products.min_quantity > 0"

// Product is a catalog entry with its stock level.
type Product struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:text;not null" json:"name"`
	CategoryID   *uint           `gorm:"column:category_id" json:"category_id"`
	Manufacturer string          `gorm:"type:text" json:"manufacturer"`
	Price        decimal.Decimal `gorm:"type:real;not null" json:"price"`
	Quantity     int             `gorm:"default:0" json:"quantity"`
	MinQuantity  int             `gorm:"column:min_quantity;default:0" json:"min_quantity"`
	Description  string          `gorm:"type:text" json:"description"`
}

func (Product) TableName() string { return "products" }

// IsLowStock reports whether stock has fallen to the threshold. A zero
// threshold disables the check.
func (p Product) IsLowStock() bool {
	return p.MinQuantity > 0 && p.Quantity <= p.MinQuantity
}

// StockValue is price times quantity.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
