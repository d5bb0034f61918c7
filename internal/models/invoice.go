package models

import "github.com/shopspring/decimal"

// IncomeInvoice records stock received from a supplier. SupplierID may
// point at a deleted supplier; readers must tolerate the miss.
type IncomeInvoice struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceNumber string          `gorm:"column:invoice_number;type:text;uniqueIndex;not null" json:"invoice_number"`
	SupplierID    *uint           `gorm:"column:supplier_id" json:"supplier_id"`
	InvoiceDate   Date            `gorm:"column:invoice_date;type:date;not null" json:"invoice_date"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:real;default:0" json:"total_amount"`
}

func (IncomeInvoice) TableName() string { return "income_invoices" }

// IncomeItem is a line of an income invoice. Nothing writes these yet.
type IncomeItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID *uint           `gorm:"column:invoice_id" json:"invoice_id"`
	ProductID *uint           `gorm:"column:product_id" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:real;not null" json:"price"`
}

func (IncomeItem) TableName() string { return "income_items" }

// OutcomeInvoice records a sale to a customer.
type OutcomeInvoice struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceNumber string          `gorm:"column:invoice_number;type:text;uniqueIndex;not null" json:"invoice_number"`
	CustomerName  string          `gorm:"column:customer_name;type:text" json:"customer_name"`
	InvoiceDate   Date            `gorm:"column:invoice_date;type:date;not null" json:"invoice_date"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:real;default:0" json:"total_amount"`
}

func (OutcomeInvoice) TableName() string { return "outcome_invoices" }

// OutcomeItem is a line of an outcome invoice. Nothing writes these yet.
type OutcomeItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID *uint           `gorm:"column:invoice_id" json:"invoice_id"`
	ProductID *uint           `gorm:"column:product_id" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:real;not null" json:"price"`
}

func (OutcomeItem) TableName() string { return "outcome_items" }

// All lists every persisted model in creation order.
func All() []any {
	return []any{
		&User{}, &Supplier{}, &Category{}, &Product{},
		&IncomeInvoice{}, &IncomeItem{}, &OutcomeInvoice{}, &OutcomeItem{},
	}
}
