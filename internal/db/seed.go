package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/computer-store/auth"
	"github.com/diewo77/computer-store/internal/models"
	"gorm.io/gorm"
)

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin"
	seedAdminFullName = "Администратор"
)

// Seed inserts the admin account and the fixed categories when absent,
// matching on username and category name.
func Seed(gdb *gorm.DB) error {
	var errs []error
	if err := seedAdmin(gdb); err != nil {
		errs = append(errs, err)
	}
	for _, name := range models.SeedCategories {
		var c models.Category
		if err := gdb.Where(models.Category{Name: name}).FirstOrCreate(&c).Error; err != nil {
			errs = append(errs, fmt.Errorf("seed category %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func seedAdmin(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.User{}).Where("username = ?", seedAdminUsername).Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin lookup: %w", err)
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(seedAdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}
	u := models.User{Username: seedAdminUsername, Password: hash, Role: models.RoleAdmin, FullName: seedAdminFullName}
	if err := gdb.Where(models.User{Username: seedAdminUsername}).FirstOrCreate(&u).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
