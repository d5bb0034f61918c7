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

// ProductInput is the product form. Quantities default to 0 when blank.
type ProductInput struct {
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	Manufacturer string `json:"manufacturer"`
	Price        string `json:"price"`
	Quantity     string `json:"quantity"`
	MinQuantity  string `json:"min_quantity"`
	Description  string `json:"description"`
}

// Build validates the form. Name and price are required.
func (in ProductInput) Build() (models.Product, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLength("name", in.Name, v)
	validation.MaxLength("manufacturer", in.Manufacturer, v)
	validation.MaxLength("description", in.Description, v)
	validation.Required("price", in.Price, v)
	p := models.Product{
		Name:         strings.TrimSpace(in.Name),
		CategoryID:   validation.ParseOptionalID("category_id", in.CategoryID, v),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Price:        validation.ParseDecimal("price", in.Price, decimal.Zero, v),
		Quantity:     validation.ParseInt("quantity", in.Quantity, v),
		MinQuantity:  validation.ParseInt("min_quantity", in.MinQuantity, v),
		Description:  strings.TrimSpace(in.Description),
	}
	if err := validationErr(v); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// ProductService is the product repository.
type ProductService struct {
	crud crud[models.Product]
}

// NewProductService binds the repository to db, asking auth before each call.
func NewProductService(db *gorm.DB, auth Authorizer) *ProductService {
	return &ProductService{crud: crud[models.Product]{
		db: db, auth: auth, resource: session.ResourceProduct, entity: "product", order: "name",
	}}
}

// List returns all products ordered by name.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.crud.list(ctx)
}

// Get returns the product or a NotFoundError.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.crud.get(ctx, id)
}

// Create validates in and stores a new product, returning its id.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (uint, error) {
	if err := s.crud.auth.Authorize(ctx, gate.ActionCreate, session.ResourceProduct); err != nil {
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

// Update replaces every field of the product with in.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) error {
	if err := s.crud.auth.Authorize(ctx, gate.ActionUpdate, session.ResourceProduct); err != nil {
		return err
	}
	rec, err := in.Build()
	if err != nil {
		return err
	}
	return s.crud.update(ctx, id, &rec)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.crud.delete(ctx, id)
}
