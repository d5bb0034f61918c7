package services

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/diewo77/computer-store/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierCreateThenListOnceSorted(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSupplierService(gdb, loggedIn(t, gdb))
	ctx := context.Background()

	for _, name := range []string{"Delta", "Alpha"} {
		_, err := svc.Create(ctx, SupplierInput{Name: name})
		require.NoError(t, err)
	}
	id, err := svc.Create(ctx, SupplierInput{Name: "Beta", Phone: "+7 900 000-00-00", Email: "beta@example.com"})
	require.NoError(t, err)
	require.NotZero(t, id)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	seen := 0
	for _, s := range list {
		names = append(names, s.Name)
		if s.ID == id {
			seen++
		}
	}
	assert.Equal(t, []string{"Alpha", "Beta", "Delta"}, names)
	assert.Equal(t, 1, seen)
}

func TestSupplierValidation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSupplierService(gdb, loggedIn(t, gdb))

	_, err := svc.Create(context.Background(), SupplierInput{Name: "  ", Email: "n/a"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.CodeRequired, verr.Violations["name"])
	assert.NotContains(t, verr.Violations, "email")

	var count int64
	gdb.Model(&models.Supplier{}).Count(&count)
	assert.Zero(t, count, "validation failure must not reach storage")
}

func TestSupplierFreeTextContacts(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSupplierService(gdb, loggedIn(t, gdb))
	ctx := context.Background()

	id, err := svc.Create(ctx, SupplierInput{Name: "Склад №3", Email: "n/a", Phone: "доб. 12"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "n/a", got.Email)
	assert.Equal(t, "доб. 12", got.Phone)

	_, err = svc.Create(ctx, SupplierInput{Name: "X", Address: strings.Repeat("a", 501)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.CodeValueTooLong, verr.Violations["address"])
}

func TestSupplierUpdateAndDelete(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSupplierService(gdb, loggedIn(t, gdb))
	ctx := context.Background()

	id, err := svc.Create(ctx, SupplierInput{Name: "Old", ContactPerson: "Ivan"})
	require.NoError(t, err)
	require.NoError(t, svc.Update(ctx, id, SupplierInput{Name: "New"}))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Empty(t, got.ContactPerson, "update overwrites every column")

	var nf *NotFoundError
	require.ErrorAs(t, svc.Update(ctx, id+100, SupplierInput{Name: "X"}), &nf)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "supplier", nf.Entity)
}

func TestSupplierDeleteLeavesInvoices(t *testing.T) {
	gdb := setupTestDB(t)
	auth := loggedIn(t, gdb)
	suppliers := NewSupplierService(gdb, auth)
	invoices := NewIncomeInvoiceService(gdb, auth)
	ctx := context.Background()

	sid, err := suppliers.Create(ctx, SupplierInput{Name: "Gone"})
	require.NoError(t, err)
	iid, err := invoices.Create(ctx, IncomeInvoiceInput{InvoiceNumber: "IN-1", SupplierID: strconv.FormatUint(uint64(sid), 10), InvoiceDate: "2024-05-01", TotalAmount: "100"})
	require.NoError(t, err)
	require.NoError(t, suppliers.Delete(ctx, sid))

	inv, err := invoices.Get(ctx, iid)
	require.NoError(t, err)
	require.NotNil(t, inv.SupplierID)
	assert.Equal(t, sid, *inv.SupplierID, "dangling reference is kept")
}

func TestServicesRequireSession(t *testing.T) {
	gdb := setupTestDB(t)
	m := session.NewManager(gdb)
	ctx := context.Background()

	_, err := NewSupplierService(gdb, m).List(ctx)
	assert.ErrorIs(t, err, session.ErrAuthRequired)
	_, err = NewProductService(gdb, m).Create(ctx, ProductInput{Name: "X", Price: "1"})
	assert.ErrorIs(t, err, session.ErrAuthRequired)
	_, err = NewCategoryService(gdb, m).Get(ctx, 1)
	assert.ErrorIs(t, err, session.ErrAuthRequired)
	assert.ErrorIs(t, NewOutcomeInvoiceService(gdb, m).Delete(ctx, 1), session.ErrAuthRequired)

	// invalid input while logged out is still an auth failure
	_, err = NewIncomeInvoiceService(gdb, m).Create(ctx, IncomeInvoiceInput{})
	assert.ErrorIs(t, err, session.ErrAuthRequired)
}

func TestListSwallowsStorageFailure(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSupplierService(gdb, loggedIn(t, gdb))
	require.NoError(t, gdb.Exec("DROP TABLE suppliers").Error)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
