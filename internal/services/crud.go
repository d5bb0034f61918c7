package services

import (
	"context"
	"errors"

	"github.com/diewo77/computer-store/gate"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Authorizer is the session gate every operation asks first.
type Authorizer interface {
	Authorize(ctx context.Context, action gate.Action, resource string) error
}

// crud runs the single statements shared by every entity.
type crud[T any] struct {
	db       *gorm.DB
	auth     Authorizer
	resource string
	entity   string
	order    string
}

// list never reports storage failures: it logs them and yields no rows.
func (c crud[T]) list(ctx context.Context) ([]T, error) {
	if err := c.auth.Authorize(ctx, gate.ActionList, c.resource); err != nil {
		return nil, err
	}
	var out []T
	if err := c.db.WithContext(ctx).Order(c.order).Find(&out).Error; err != nil {
		logrus.WithError(err).WithField("entity", c.entity).Error("list failed")
		return []T{}, nil
	}
	return out, nil
}

func (c crud[T]) get(ctx context.Context, id uint) (*T, error) {
	if err := c.auth.Authorize(ctx, gate.ActionView, c.resource); err != nil {
		return nil, err
	}
	var rec T
	err := c.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: c.entity, ID: id}
	}
	if err != nil {
		return nil, c.fail("get", err)
	}
	return &rec, nil
}

func (c crud[T]) create(ctx context.Context, rec *T) error {
	if err := c.db.WithContext(ctx).Create(rec).Error; err != nil {
		return c.fail("create", err)
	}
	return nil
}

// update overwrites every column but id. Last writer wins.
func (c crud[T]) update(ctx context.Context, id uint, rec *T) error {
	res := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Select("*").Omit("id").Updates(rec)
	if res.Error != nil {
		return c.fail("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: c.entity, ID: id}
	}
	return nil
}

// delete removes the row without looking at dependants.
func (c crud[T]) delete(ctx context.Context, id uint) error {
	if err := c.auth.Authorize(ctx, gate.ActionDelete, c.resource); err != nil {
		return err
	}
	res := c.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return c.fail("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: c.entity, ID: id}
	}
	logrus.WithFields(logrus.Fields{"entity": c.entity, "id": id}).Info("deleted")
	return nil
}

func (c crud[T]) fail(op string, err error) error {
	logrus.WithError(err).WithFields(logrus.Fields{"entity": c.entity, "op": op}).Error("storage failure")
	return &StorageError{Op: c.entity + " " + op, Err: err}
}
