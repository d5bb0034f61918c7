package services

import (
	"context"

	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/internal/session"
	"gorm.io/gorm"
)

// CategoryService is read-only; the category set is seeded.
type CategoryService struct {
	crud crud[models.Category]
}

func NewCategoryService(db *gorm.DB, auth Authorizer) *CategoryService {
	return &CategoryService{crud: crud[models.Category]{
		db: db, auth: auth, resource: session.ResourceCategory, entity: "category", order: "id",
	}}
}

// List returns the seeded categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.crud.list(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.crud.get(ctx, id)
}
