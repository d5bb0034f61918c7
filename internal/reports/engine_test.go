package reports

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/diewo77/computer-store/i18n"
	"github.com/diewo77/computer-store/internal/config"
	"github.com/diewo77/computer-store/internal/db"
	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

func setupEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	gdb, err := db.Open(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "store.db"), BusyTimeout: 1000})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Init(gdb))
	m := session.NewManager(gdb)
	_, err = m.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	return NewEngine(gdb, m).WithClock(func() time.Time { return fixedNow }), gdb
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func uintPtr(v uint) *uint { return &v }

func TestStockOrdering(t *testing.T) {
	e, gdb := setupEngine(t)
	products := []models.Product{
		{Name: "A", Quantity: 5, MinQuantity: 10, Price: dec("100"), CategoryID: uintPtr(1)},
		{Name: "B", Quantity: 20, MinQuantity: 0, Price: dec("10.50")},
		{Name: "C", Quantity: 2, MinQuantity: 5, Price: dec("1000"), CategoryID: uintPtr(999)},
	}
	require.NoError(t, gdb.Create(&products).Error)

	r, err := e.Stock(context.Background())
	require.NoError(t, err)
	var names []string
	for _, row := range r.Rows {
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)
	assert.True(t, r.Rows[0].LowStock)
	assert.True(t, r.Rows[1].LowStock)
	assert.False(t, r.Rows[2].LowStock)
	assert.Equal(t, "Компьютеры", r.Rows[1].Category)
	assert.Empty(t, r.Rows[0].Category, "dangling category reads as empty")
	assert.Equal(t, 3, r.TotalProducts)
	assert.Equal(t, 2, r.LowStockCount)
	assert.True(t, r.TotalValue.Equal(dec("2710")), "got %s", r.TotalValue)
}

func TestEmptyReportsAreZeroed(t *testing.T) {
	e, _ := setupEngine(t)
	ctx := context.Background()

	stock, err := e.Stock(ctx)
	require.NoError(t, err)
	assert.Empty(t, stock.Rows)
	assert.Zero(t, stock.TotalProducts)
	assert.True(t, stock.TotalValue.IsZero())

	sales, err := e.Sales(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sales.Rows)
	assert.Zero(t, sales.Count)
	assert.True(t, sales.Total.IsZero())

	turnover, err := e.Turnover(ctx)
	require.NoError(t, err)
	assert.Zero(t, turnover.IncomeCount)
	assert.Zero(t, turnover.OutcomeCount)
	assert.Equal(t, "0.00", turnover.IncomeTotal.StringFixed(2))
	assert.Equal(t, "0.00", turnover.OutcomeTotal.StringFixed(2))
	assert.Equal(t, "0.00", turnover.Turnover.StringFixed(2))

	suppliers, err := e.Suppliers(ctx)
	require.NoError(t, err)
	assert.Empty(t, suppliers.Rows)
}

func TestTurnoverCurrentMonth(t *testing.T) {
	e, gdb := setupEngine(t)
	require.NoError(t, gdb.Create(&[]models.IncomeInvoice{
		{InvoiceNumber: "I-1", InvoiceDate: "2024-06-01", TotalAmount: dec("100.25")},
		{InvoiceNumber: "I-2", InvoiceDate: "2024-06-15", TotalAmount: dec("50")},
		{InvoiceNumber: "I-3", InvoiceDate: "2024-05-31", TotalAmount: dec("999")},
		{InvoiceNumber: "I-4", InvoiceDate: "2024-06-16", TotalAmount: dec("999")},
	}).Error)
	require.NoError(t, gdb.Create(&models.OutcomeInvoice{InvoiceNumber: "O-1", InvoiceDate: "2024-06-10", TotalAmount: dec("30")}).Error)

	r, err := e.Turnover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Date("2024-06-01"), r.PeriodStart)
	assert.Equal(t, models.Date("2024-06-15"), r.PeriodEnd)
	assert.Equal(t, int64(2), r.IncomeCount)
	assert.Equal(t, "150.25", r.IncomeTotal.StringFixed(2))
	assert.Equal(t, int64(1), r.OutcomeCount)
	assert.Equal(t, "180.25", r.Turnover.StringFixed(2), "turnover is income plus outcome")

	d, err := e.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.MonthIncomeInvoices)
	assert.Equal(t, int64(1), d.MonthOutcomeInvoices)
}

func TestSalesLatestTwenty(t *testing.T) {
	e, gdb := setupEngine(t)
	for i := 1; i <= 25; i++ {
		inv := models.OutcomeInvoice{
			InvoiceNumber: fmt.Sprintf("O-%02d", i),
			InvoiceDate:   models.DateOf(time.Date(2024, time.January, i, 0, 0, 0, 0, time.UTC)),
			TotalAmount:   dec("10"),
		}
		require.NoError(t, gdb.Create(&inv).Error)
	}
	r, err := e.Sales(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Rows, 20)
	assert.Equal(t, "O-25", r.Rows[0].InvoiceNumber)
	assert.Equal(t, "O-06", r.Rows[19].InvoiceNumber)
	assert.Equal(t, 20, r.Count)
	assert.Equal(t, "200.00", r.Total.StringFixed(2))
}

func TestSuppliersDeletedSupplierFallback(t *testing.T) {
	e, gdb := setupEngine(t)
	kept := models.Supplier{Name: "Kept", ContactPerson: "Anna", Phone: "123"}
	gone := models.Supplier{Name: "Gone", ContactPerson: "Boris", Phone: "456"}
	idle := models.Supplier{Name: "Idle"}
	require.NoError(t, gdb.Create(&kept).Error)
	require.NoError(t, gdb.Create(&gone).Error)
	require.NoError(t, gdb.Create(&idle).Error)
	require.NoError(t, gdb.Create(&[]models.IncomeInvoice{
		{InvoiceNumber: "I-1", SupplierID: &kept.ID, InvoiceDate: "2024-06-01", TotalAmount: dec("100")},
		{InvoiceNumber: "I-2", SupplierID: &gone.ID, InvoiceDate: "2024-06-02", TotalAmount: dec("300")},
		{InvoiceNumber: "I-3", InvoiceDate: "2024-06-03", TotalAmount: dec("50")},
	}).Error)
	require.NoError(t, gdb.Delete(&models.Supplier{}, gone.ID).Error)

	r, err := e.Suppliers(i18n.WithLang(context.Background(), i18n.LangEN))
	require.NoError(t, err)
	require.Len(t, r.Rows, 3)

	assert.True(t, r.Rows[0].Unspecified)
	assert.Equal(t, "Not specified", r.Rows[0].Name)
	assert.Equal(t, "-", r.Rows[0].ContactPerson)
	assert.Equal(t, "-", r.Rows[0].Phone)
	assert.Equal(t, int64(2), r.Rows[0].InvoiceCount)
	assert.Equal(t, "350.00", r.Rows[0].TotalAmount.StringFixed(2))

	assert.Equal(t, "Kept", r.Rows[1].Name)
	assert.Equal(t, "Anna", r.Rows[1].ContactPerson)

	assert.Equal(t, "Idle", r.Rows[2].Name)
	assert.Equal(t, "-", r.Rows[2].Phone)
	assert.Zero(t, r.Rows[2].InvoiceCount)
	assert.True(t, r.Rows[2].TotalAmount.IsZero())
}

func TestReportsRequireSession(t *testing.T) {
	e, _ := setupEngine(t)
	e.auth.(*session.Manager).Logout()
	for _, k := range Kinds {
		_, err := e.Generate(context.Background(), k)
		assert.ErrorIs(t, err, session.ErrAuthRequired, string(k))
	}
	_, err := e.Dashboard(context.Background())
	assert.ErrorIs(t, err, session.ErrAuthRequired)
}

func TestGenerateUnknownKind(t *testing.T) {
	e, _ := setupEngine(t)
	_, err := e.Generate(context.Background(), Kind("profit"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}
