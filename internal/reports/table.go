package reports

import (
	"github.com/diewo77/computer-store/i18n"
	"github.com/diewo77/computer-store/internal/models"
	"github.com/shopspring/decimal"
)

// Table is a report laid out for display or export.
type Table struct {
	Title       string
	GeneratedAt models.Date
	Columns     []string
	Rows        [][]any
	Summary     []SummaryLine
}

type SummaryLine struct {
	Label string
	Value any
}

func labels(lang string, codes ...string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = i18n.T(lang, c)
	}
	return out
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func (r *StockReport) Table(lang string) Table {
	t := Table{
		Title:       i18n.T(lang, "report_stock"),
		GeneratedAt: r.GeneratedAt,
		Columns:     labels(lang, "col_name", "col_category", "col_quantity", "col_min_quantity", "col_price", "col_low_stock"),
	}
	for _, row := range r.Rows {
		flag := i18n.T(lang, "no")
		if row.LowStock {
			flag = i18n.T(lang, "yes")
		}
		category := row.Category
		if category == "" {
			category = placeholder
		}
		t.Rows = append(t.Rows, []any{row.Name, category, row.Quantity, row.MinQuantity, money(row.Price), flag})
	}
	t.Summary = []SummaryLine{
		{i18n.T(lang, "total_products"), r.TotalProducts},
		{i18n.T(lang, "low_stock_count"), r.LowStockCount},
		{i18n.T(lang, "total_value"), money(r.TotalValue)},
	}
	return t
}

func (r *SalesReport) Table(lang string) Table {
	t := Table{
		Title:       i18n.T(lang, "report_sales"),
		GeneratedAt: r.GeneratedAt,
		Columns:     labels(lang, "col_invoice_number", "col_date", "col_customer", "col_amount"),
	}
	for _, row := range r.Rows {
		customer := row.CustomerName
		if customer == "" {
			customer = placeholder
		}
		t.Rows = append(t.Rows, []any{row.InvoiceNumber, row.InvoiceDate.String(), customer, money(row.TotalAmount)})
	}
	t.Summary = []SummaryLine{
		{i18n.T(lang, "invoice_count"), r.Count},
		{i18n.T(lang, "total_amount"), money(r.Total)},
	}
	return t
}

func (r *TurnoverReport) Table(lang string) Table {
	return Table{
		Title:       i18n.T(lang, "report_turnover"),
		GeneratedAt: r.GeneratedAt,
		Columns:     labels(lang, "col_indicator", "col_value"),
		Rows: [][]any{
			{i18n.T(lang, "period"), r.PeriodStart.String() + " - " + r.PeriodEnd.String()},
			{i18n.T(lang, "income_count"), r.IncomeCount},
			{i18n.T(lang, "income_total"), money(r.IncomeTotal)},
			{i18n.T(lang, "outcome_count"), r.OutcomeCount},
			{i18n.T(lang, "outcome_total"), money(r.OutcomeTotal)},
		},
		Summary: []SummaryLine{{i18n.T(lang, "turnover"), money(r.Turnover)}},
	}
}

func (r *SuppliersReport) Table(lang string) Table {
	t := Table{
		Title:       i18n.T(lang, "report_suppliers"),
		GeneratedAt: r.GeneratedAt,
		Columns:     labels(lang, "col_name", "col_contact", "col_phone", "col_invoice_count", "col_amount"),
	}
	for _, row := range r.Rows {
		name := row.Name
		if row.Unspecified {
			name = i18n.T(lang, "not_specified")
		}
		t.Rows = append(t.Rows, []any{name, row.ContactPerson, row.Phone, row.InvoiceCount, money(row.TotalAmount)})
	}
	return t
}
