// Package reports runs the read-only aggregate queries behind the four
// shop reports and the main page counters.
package reports

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/diewo77/computer-store/gate"
	"github.com/diewo77/computer-store/i18n"
	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/internal/services"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	salesLimit  = 20
	placeholder = "-"
)

// Kind names a report.
type Kind string

const (
	KindStock     Kind = "stock"
	KindSales     Kind = "sales"
	KindTurnover  Kind = "turnover"
	KindSuppliers Kind = "suppliers"
)

// Kinds lists the reports in menu order.
var Kinds = []Kind{KindStock, KindSales, KindTurnover, KindSuppliers}

// ErrUnknownKind is returned by Generate for an unrecognised kind.
var ErrUnknownKind = errors.New("unknown report")

// Report is any generated report that can be laid out as a table.
type Report interface {
	Table(lang string) Table
}

// Engine runs report queries against current state. Nothing is cached.
type Engine struct {
	db   *gorm.DB
	auth services.Authorizer
	now  func() time.Time
}

// NewEngine returns an engine reading db, asking auth before each report.
func NewEngine(db *gorm.DB, auth services.Authorizer) *Engine {
	return &Engine{db: db, auth: auth, now: time.Now}
}

// WithClock replaces the clock used for the current month and the
// generation date.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Generate runs the report of the given kind.
func (e *Engine) Generate(ctx context.Context, kind Kind) (Report, error) {
	switch kind {
	case KindStock:
		return e.Stock(ctx)
	case KindSales:
		return e.Sales(ctx)
	case KindTurnover:
		return e.Turnover(ctx)
	case KindSuppliers:
		return e.Suppliers(ctx)
	}
	return nil, ErrUnknownKind
}

func (e *Engine) authorize(ctx context.Context) error {
	return e.auth.Authorize(ctx, gate.ActionReport, session.ResourceReport)
}

func (e *Engine) fail(report string, err error) error {
	logrus.WithError(err).WithField("report", report).Error("report query failed")
	return &services.StorageError{Op: report + " report", Err: err}
}

// monthPeriod is day 1 of the current month through today, both inclusive.
func (e *Engine) monthPeriod() (models.Date, models.Date) {
	now := e.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return models.DateOf(start), models.DateOf(now)
}

// StockRow is one product line of the stock report.
type StockRow struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
	LowStock    bool            `json:"low_stock"`
}

// StockReport lists every product with inventory totals.
type StockReport struct {
	GeneratedAt   models.Date     `json:"generated_at"`
	Rows          []StockRow      `json:"rows"`
	TotalProducts int             `json:"total_products"`
	LowStockCount int             `json:"low_stock_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// Stock lists every product with its category, low-stock rows first and
// then by ascending quantity.
func (e *Engine) Stock(ctx context.Context) (*StockReport, error) {
	if err := e.authorize(ctx); err != nil {
		return nil, err
	}
	rows := []StockRow{}
	err := e.db.WithContext(ctx).Table("products").
		Select("products.name AS name, COALESCE(categories.name, '') AS category, " +
			"COALESCE(products.quantity, 0) AS quantity, COALESCE(products.min_quantity, 0) AS min_quantity, " +
			"products.price AS price, CASE WHEN " + models.LowStockCondition + " THEN 1 ELSE 0 END AS low_stock").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("low_stock DESC, products.quantity ASC, products.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, e.fail(string(KindStock), err)
	}
	r := &StockReport{GeneratedAt: models.DateOf(e.now()), Rows: rows, TotalProducts: len(rows), TotalValue: decimal.Zero}
	for _, row := range rows {
		if row.LowStock {
			r.LowStockCount++
		}
		r.TotalValue = r.TotalValue.Add(row.Price.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	return r, nil
}

// SalesRow is one outcome invoice of the sales report.
type SalesRow struct {
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   models.Date     `json:"invoice_date"`
	CustomerName  string          `json:"customer_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// SalesReport holds the latest outcome invoices and their sum.
type SalesReport struct {
	GeneratedAt models.Date     `json:"generated_at"`
	Rows        []SalesRow      `json:"rows"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
}

// Sales shows the most recent outcome invoices.
func (e *Engine) Sales(ctx context.Context) (*SalesReport, error) {
	if err := e.authorize(ctx); err != nil {
		return nil, err
	}
	rows := []SalesRow{}
	err := e.db.WithContext(ctx).Table("outcome_invoices").
		Select("invoice_number, invoice_date, COALESCE(customer_name, '') AS customer_name, COALESCE(total_amount, 0) AS total_amount").
		Order("invoice_date DESC, id DESC").
		Limit(salesLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, e.fail(string(KindSales), err)
	}
	r := &SalesReport{GeneratedAt: models.DateOf(e.now()), Rows: rows, Count: len(rows), Total: decimal.Zero}
	for _, row := range rows {
		r.Total = r.Total.Add(row.TotalAmount)
	}
	return r, nil
}

// TurnoverReport sums invoices from the first of the month through today.
type TurnoverReport struct {
	GeneratedAt  models.Date     `json:"generated_at"`
	PeriodStart  models.Date     `json:"period_start"`
	PeriodEnd    models.Date     `json:"period_end"`
	IncomeCount  int64           `json:"income_count"`
	IncomeTotal  decimal.Decimal `json:"income_total"`
	OutcomeCount int64           `json:"outcome_count"`
	OutcomeTotal decimal.Decimal `json:"outcome_total"`
	// Turnover adds both sides; it is not a net figure.
	Turnover decimal.Decimal `json:"turnover"`
}

type aggregate struct {
	Count int64
	Total decimal.Decimal
}

func (e *Engine) sumBetween(ctx context.Context, table string, from, to models.Date) (aggregate, error) {
	var a aggregate
	err := e.db.WithContext(ctx).Table(table).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Where("invoice_date >= ? AND invoice_date <= ?", from, to).
		Scan(&a).Error
	return a, err
}

// Turnover sums income and outcome invoices for the current month.
func (e *Engine) Turnover(ctx context.Context) (*TurnoverReport, error) {
	if err := e.authorize(ctx); err != nil {
		return nil, err
	}
	from, to := e.monthPeriod()
	in, err := e.sumBetween(ctx, "income_invoices", from, to)
	if err != nil {
		return nil, e.fail(string(KindTurnover), err)
	}
	out, err := e.sumBetween(ctx, "outcome_invoices", from, to)
	if err != nil {
		return nil, e.fail(string(KindTurnover), err)
	}
	return &TurnoverReport{
		GeneratedAt:  models.DateOf(e.now()),
		PeriodStart:  from,
		PeriodEnd:    to,
		IncomeCount:  in.Count,
		IncomeTotal:  in.Total,
		OutcomeCount: out.Count,
		OutcomeTotal: out.Total,
		Turnover:     in.Total.Add(out.Total),
	}, nil
}

// SupplierRow aggregates one supplier's income invoices.
type SupplierRow struct {
	Name          string          `json:"name"`
	ContactPerson string          `json:"contact_person"`
	Phone         string          `json:"phone"`
	InvoiceCount  int64           `json:"invoice_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	// Unspecified marks the row collecting invoices without a live supplier.
	Unspecified bool `json:"unspecified"`
}

// SuppliersReport ranks suppliers by invoice total.
type SuppliersReport struct {
	GeneratedAt models.Date   `json:"generated_at"`
	Rows        []SupplierRow `json:"rows"`
}

// Suppliers ranks suppliers by the total of their income invoices.
// Invoices whose supplier is unset or deleted are grouped into one row.
func (e *Engine) Suppliers(ctx context.Context) (*SuppliersReport, error) {
	if err := e.authorize(ctx); err != nil {
		return nil, err
	}
	rows := []SupplierRow{}
	err := e.db.WithContext(ctx).Table("suppliers").
		Select("suppliers.name AS name, COALESCE(suppliers.contact_person, '') AS contact_person, " +
			"COALESCE(suppliers.phone, '') AS phone, COUNT(income_invoices.id) AS invoice_count, " +
			"COALESCE(SUM(income_invoices.total_amount), 0) AS total_amount").
		Joins("LEFT JOIN income_invoices ON suppliers.id = income_invoices.supplier_id").
		Group("suppliers.id").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, e.fail(string(KindSuppliers), err)
	}

	var orphans aggregate
	err = e.db.WithContext(ctx).Table("income_invoices").
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Where("supplier_id IS NULL OR supplier_id NOT IN (SELECT id FROM suppliers)").
		Scan(&orphans).Error
	if err != nil {
		return nil, e.fail(string(KindSuppliers), err)
	}
	if orphans.Count > 0 {
		rows = append(rows, SupplierRow{
			Name:         i18n.T(i18n.LangFrom(ctx), "not_specified"),
			InvoiceCount: orphans.Count,
			TotalAmount:  orphans.Total,
			Unspecified:  true,
		})
	}
	for i := range rows {
		if rows[i].ContactPerson == "" {
			rows[i].ContactPerson = placeholder
		}
		if rows[i].Phone == "" {
			rows[i].Phone = placeholder
		}
	}
	slices.SortStableFunc(rows, func(a, b SupplierRow) int {
		return b.TotalAmount.Cmp(a.TotalAmount)
	})
	return &SuppliersReport{GeneratedAt: models.DateOf(e.now()), Rows: rows}, nil
}

// Dashboard holds the main page counters.
type Dashboard struct {
	Products             int64       `json:"products"`
	LowStock             int64       `json:"low_stock"`
	MonthIncomeInvoices  int64       `json:"month_income_invoices"`
	MonthOutcomeInvoices int64       `json:"month_outcome_invoices"`
	PeriodStart          models.Date `json:"period_start"`
}

// Dashboard counts products, low-stock products and this month's invoices.
func (e *Engine) Dashboard(ctx context.Context) (*Dashboard, error) {
	if err := e.authorize(ctx); err != nil {
		return nil, err
	}
	from, to := e.monthPeriod()
	d := &Dashboard{PeriodStart: from}
	tx := e.db.WithContext(ctx)
	if err := tx.Table("products").Count(&d.Products).Error; err != nil {
		return nil, e.fail("dashboard", err)
	}
	if err := tx.Table("products").Where(models.LowStockCondition).Count(&d.LowStock).Error; err != nil {
		return nil, e.fail("dashboard", err)
	}
	in, err := e.sumBetween(ctx, "income_invoices", from, to)
	if err != nil {
		return nil, e.fail("dashboard", err)
	}
	out, err := e.sumBetween(ctx, "outcome_invoices", from, to)
	if err != nil {
		return nil, e.fail("dashboard", err)
	}
	d.MonthIncomeInvoices, d.MonthOutcomeInvoices = in.Count, out.Count
	return d, nil
}
