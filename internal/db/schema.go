package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/computer-store/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Init creates missing tables and seed rows. Existing tables are never
// altered, so files written by the previous desktop program stay readable.
// Every failure is logged; the joined error is returned and callers are
// expected to carry on with whatever state exists.
func Init(gdb *gorm.DB) error {
	var errs []error
	for _, m := range models.All() {
		if err := ensureTable(gdb, m); err != nil {
			logrus.WithError(err).Error("schema: create table failed")
			errs = append(errs, err)
		}
	}
	if err := Seed(gdb); err != nil {
		logrus.WithError(err).Error("schema: seed failed")
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		logrus.Info("database initialised")
	}
	return errors.Join(errs...)
}

func ensureTable(gdb *gorm.DB, model any) error {
	m := gdb.Migrator()
	if m.HasTable(model) {
		return nil
	}
	if err := m.CreateTable(model); err != nil {
		return fmt.Errorf("create table for %T: %w", model, err)
	}
	return nil
}
