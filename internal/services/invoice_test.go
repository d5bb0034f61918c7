package services

import (
	"context"
	"testing"

	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeInvoiceDuplicateNumber(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewIncomeInvoiceService(gdb, loggedIn(t, gdb))
	ctx := context.Background()

	_, err := svc.Create(ctx, IncomeInvoiceInput{InvoiceNumber: "IN-42", InvoiceDate: "2024-06-01", TotalAmount: "1500"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, IncomeInvoiceInput{InvoiceNumber: "IN-42", InvoiceDate: "2024-06-02"})
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Duplicate())

	var count int64
	gdb.Model(&models.IncomeInvoice{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIncomeInvoiceTotalStoredAsGiven(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewIncomeInvoiceService(gdb, loggedIn(t, gdb))
	ctx := context.Background()

	id, err := svc.Create(ctx, IncomeInvoiceInput{InvoiceNumber: "IN-1", InvoiceDate: "2024-06-01"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.IsZero(), "blank total defaults to 0")
	assert.Nil(t, got.SupplierID)
	assert.Equal(t, models.Date("2024-06-01"), got.InvoiceDate)

	require.NoError(t, svc.Update(ctx, id, IncomeInvoiceInput{InvoiceNumber: "IN-1", InvoiceDate: "2024-06-03", TotalAmount: "12.34"}))
	got, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("12.34")))
}

func TestInvoiceValidation(t *testing.T) {
	_, err := IncomeInvoiceInput{InvoiceDate: "01.06.2024", TotalAmount: "-5"}.Build()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.CodeRequired, verr.Violations["invoice_number"])
	assert.Equal(t, validation.CodeInvalidDate, verr.Violations["invoice_date"])
	assert.Equal(t, validation.CodeNonNegative, verr.Violations["total_amount"])

	_, err = OutcomeInvoiceInput{InvoiceNumber: "OUT-1"}.Build()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.CodeRequired, verr.Violations["invoice_date"])

	_, err = OutcomeInvoiceInput{InvoiceNumber: "OUT-2", InvoiceDate: "2024-06-01", TotalAmount: "9e999"}.Build()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.CodeInvalidNumber, verr.Violations["total_amount"])
}

func TestOutcomeInvoiceListNewestFirst(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewOutcomeInvoiceService(gdb, loggedIn(t, gdb))
	ctx := context.Background()

	for _, in := range []OutcomeInvoiceInput{
		{InvoiceNumber: "OUT-1", InvoiceDate: "2024-01-10", CustomerName: "Petrov"},
		{InvoiceNumber: "OUT-2", InvoiceDate: "2024-03-01"},
		{InvoiceNumber: "OUT-3", InvoiceDate: "2024-03-01", TotalAmount: "10"},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}
	list, err := svc.List(ctx)
	require.NoError(t, err)
	var numbers []string
	for _, inv := range list {
		numbers = append(numbers, inv.InvoiceNumber)
	}
	assert.Equal(t, []string{"OUT-3", "OUT-2", "OUT-1"}, numbers)

	var dup *StorageError
	_, err = svc.Create(ctx, OutcomeInvoiceInput{InvoiceNumber: "OUT-2", InvoiceDate: "2024-04-01"})
	require.ErrorAs(t, err, &dup)
	assert.True(t, dup.Duplicate())
}
