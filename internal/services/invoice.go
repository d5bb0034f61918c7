package services

import (
	"context"
	"strings"

	"github.com/diewo77/computer-store/gate"
	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/diewo77/computer-store/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// invoiceOrder puts the newest invoices first.
const invoiceOrder = "invoice_date DESC, id DESC"

// IncomeInvoiceInput is the goods-received form. TotalAmount is taken as
// entered; line items are not summed.
type IncomeInvoiceInput struct {
	InvoiceNumber string `json:"invoice_number"`
	SupplierID    string `json:"supplier_id"`
	InvoiceDate   string `json:"invoice_date"`
	TotalAmount   string `json:"total_amount"`
}

// Build validates the form. Number and date are required.
func (in IncomeInvoiceInput) Build() (models.IncomeInvoice, error) {
	v := validation.Violations{}
	validation.Required("invoice_number", in.InvoiceNumber, v)
	validation.MaxLength("invoice_number", in.InvoiceNumber, v)
	inv := models.IncomeInvoice{
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		SupplierID:    validation.ParseOptionalID("supplier_id", in.SupplierID, v),
		InvoiceDate:   models.Date(validation.ISODate("invoice_date", in.InvoiceDate, v)),
		TotalAmount:   validation.ParseDecimal("total_amount", in.TotalAmount, decimal.Zero, v),
	}
	if err := validationErr(v); err != nil {
		return models.IncomeInvoice{}, err
	}
	return inv, nil
}

// OutcomeInvoiceInput is the sale form.
type OutcomeInvoiceInput struct {
	InvoiceNumber string `json:"invoice_number"`
	CustomerName  string `json:"customer_name"`
	InvoiceDate   string `json:"invoice_date"`
	TotalAmount   string `json:"total_amount"`
}

// Build validates the form. Number and date are required.
func (in OutcomeInvoiceInput) Build() (models.OutcomeInvoice, error) {
	v := validation.Violations{}
	validation.Required("invoice_number", in.InvoiceNumber, v)
	validation.MaxLength("invoice_number", in.InvoiceNumber, v)
	validation.MaxLength("customer_name", in.CustomerName, v)
	inv := models.OutcomeInvoice{
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		InvoiceDate:   models.Date(validation.ISODate("invoice_date", in.InvoiceDate, v)),
		TotalAmount:   validation.ParseDecimal("total_amount", in.TotalAmount, decimal.Zero, v),
	}
	if err := validationErr(v); err != nil {
		return models.OutcomeInvoice{}, err
	}
	return inv, nil
}

// IncomeInvoiceService is the income invoice repository.
type IncomeInvoiceService struct {
	crud crud[models.IncomeInvoice]
}

func NewIncomeInvoiceService(db *gorm.DB, auth Authorizer) *IncomeInvoiceService {
	return &IncomeInvoiceService{crud: crud[models.IncomeInvoice]{
		db: db, auth: auth, resource: session.ResourceIncomeInvoice, entity: "income_invoice", order: invoiceOrder,
	}}
}

// List returns income invoices, newest first.
func (s *IncomeInvoiceService) List(ctx context.Context) ([]models.IncomeInvoice, error) {
	return s.crud.list(ctx)
}

func (s *IncomeInvoiceService) Get(ctx context.Context, id uint) (*models.IncomeInvoice, error) {
	return s.crud.get(ctx, id)
}

// Create fails with a duplicate StorageError when the number is taken.
func (s *IncomeInvoiceService) Create(ctx context.Context, in IncomeInvoiceInput) (uint, error) {
	if err := s.crud.auth.Authorize(ctx, gate.ActionCreate, session.ResourceIncomeInvoice); err != nil {
		return 0, err
	}
	rec, err := in.Build()
	if err != nil {
		return 0, err
	}
	if err := s.crud.create(ctx, &rec); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (s *IncomeInvoiceService) Update(ctx context.Context, id uint, in IncomeInvoiceInput) error {
	if err := s.crud.auth.Authorize(ctx, gate.ActionUpdate, session.ResourceIncomeInvoice); err != nil {
		return err
	}
	rec, err := in.Build()
	if err != nil {
		return err
	}
	return s.crud.update(ctx, id, &rec)
}

func (s *IncomeInvoiceService) Delete(ctx context.Context, id uint) error {
	return s.crud.delete(ctx, id)
}

// OutcomeInvoiceService is the outcome invoice repository.
type OutcomeInvoiceService struct {
	crud crud[models.OutcomeInvoice]
}

func NewOutcomeInvoiceService(db *gorm.DB, auth Authorizer) *OutcomeInvoiceService {
	return &OutcomeInvoiceService{crud: crud[models.OutcomeInvoice]{
		db: db, auth: auth, resource: session.ResourceOutcomeInvoice, entity: "outcome_invoice", order: invoiceOrder,
	}}
}

// List returns outcome invoices, newest first.
func (s *OutcomeInvoiceService) List(ctx context.Context) ([]models.OutcomeInvoice, error) {
	return s.crud.list(ctx)
}

func (s *OutcomeInvoiceService) Get(ctx context.Context, id uint) (*models.OutcomeInvoice, error) {
	return s.crud.get(ctx, id)
}

func (s *OutcomeInvoiceService) Create(ctx context.Context, in OutcomeInvoiceInput) (uint, error) {
	if err := s.crud.auth.Authorize(ctx, gate.ActionCreate, session.ResourceOutcomeInvoice); err != nil {
		return 0, err
	}
	rec, err := in.Build()
	if err != nil {
		return 0, err
	}
	if err := s.crud.create(ctx, &rec); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (s *OutcomeInvoiceService) Update(ctx context.Context, id uint, in OutcomeInvoiceInput) error {
	if err := s.crud.auth.Authorize(ctx, gate.ActionUpdate, session.ResourceOutcomeInvoice); err != nil {
		return err
	}
	rec, err := in.Build()
	if err != nil {
		return err
	}
	return s.crud.update(ctx, id, &rec)
}

func (s *OutcomeInvoiceService) Delete(ctx context.Context, id uint) error {
	return s.crud.delete(ctx, id)
}
