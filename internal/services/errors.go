package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/computer-store/validation"
	"gorm.io/gorm"
)

// ValidationError lists malformed or missing fields. Storage is never
// touched when one is returned.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := e.Violations.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Violations[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// StorageError wraps a failed statement.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// Duplicate reports a unique constraint violation.
func (e *StorageError) Duplicate() bool {
	if errors.Is(e.Err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(e.Err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

// NotFoundError is an id lookup miss.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %d not found", e.Entity, e.ID) }

func validationErr(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}
