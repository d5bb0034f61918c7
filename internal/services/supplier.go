package services

import (
	"context"
	"strings"

	"github.com/diewo77/computer-store/gate"
	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/diewo77/computer-store/validation"
	"gorm.io/gorm"
)

// SupplierInput is the supplier form as typed by the user.
type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// Build validates the form. Only the name is required; the other fields
// are free text bounded in length.
func (in SupplierInput) Build() (models.Supplier, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	for field, value := range map[string]string{
		"name": in.Name, "contact_person": in.ContactPerson, "phone": in.Phone,
		"email": in.Email, "address": in.Address,
	} {
		validation.MaxLength(field, value, v)
	}
	if err := validationErr(v); err != nil {
		return models.Supplier{}, err
	}
	return models.Supplier{
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Address:       strings.TrimSpace(in.Address),
	}, nil
}

// SupplierService is the supplier repository.
type SupplierService struct {
	crud crud[models.Supplier]
}

// NewSupplierService binds the repository to db, asking auth before each call.
func NewSupplierService(db *gorm.DB, auth Authorizer) *SupplierService {
	return &SupplierService{crud: crud[models.Supplier]{
		db: db, auth: auth, resource: session.ResourceSupplier, entity: "supplier", order: "name",
	}}
}

// List returns all suppliers ordered by name.
func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	return s.crud.list(ctx)
}

// Get returns the supplier or a NotFoundError.
func (s *SupplierService) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	return s.crud.get(ctx, id)
}

// Create validates in and stores a new supplier, returning its id.
func (s *SupplierService) Create(ctx context.Context, in SupplierInput) (uint, error) {
	if err := s.crud.auth.Authorize(ctx, gate.ActionCreate, session.ResourceSupplier); err != nil {
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

// Update replaces every field of the supplier with in.
func (s *SupplierService) Update(ctx context.Context, id uint, in SupplierInput) error {
	if err := s.crud.auth.Authorize(ctx, gate.ActionUpdate, session.ResourceSupplier); err != nil {
		return err
	}
	rec, err := in.Build()
	if err != nil {
		return err
	}
	return s.crud.update(ctx, id, &rec)
}

// Delete leaves income invoices pointing at the removed supplier.
func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	return s.crud.delete(ctx, id)
}
