package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mamadbah2/herd/internal/domain/models"
)

// Record constrains Records to pointer types of owned models.
type Record[T any] interface {
	*T
	models.Owned
}

// Records is the CRUD repository shared by every model that belongs to an animal.
type Records[T any, PT Record[T]] struct {
	store *Store
	order string
}

// NewRecords builds a repository listing rows in the given ORDER BY.
func NewRecords[T any, PT Record[T]](store *Store, order string) *Records[T, PT] {
	if order == "" {
		order = "id"
	}
	return &Records[T, PT]{store: store, order: order}
}

// List returns every row, or only the rows of one animal when cattleID > 0.
func (r *Records[T, PT]) List(ctx context.Context, cattleID uint) ([]T, error) {
	q := r.store.db.WithContext(ctx).Order(r.order)
	if cattleID > 0 {
		q = q.Where("cattle_id = ?", cattleID)
	}

	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", new(T), err)
	}
	return out, nil
}

// Get loads one row by id.
func (r *Records[T, PT]) Get(ctx context.Context, id uint) (PT, error) {
	rec := PT(new(T))
	if err := r.store.db.WithContext(ctx).First(rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return rec, nil
}

// Create inserts rec after checking that its animal exists.
func (r *Records[T, PT]) Create(ctx context.Context, rec PT) error {
	rec.SetRecordID(0)
	err := r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[models.Cattle](tx, rec.OwnerID(), ErrCattleNotFound); err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	return r.wrap("create", err)
}

// Update overwrites every column of an existing row.
func (r *Records[T, PT]) Update(ctx context.Context, rec PT) error {
	err := r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[T](tx, rec.RecordID(), ErrNotFound); err != nil {
			return err
		}
		if err := ensureExists[models.Cattle](tx, rec.OwnerID(), ErrCattleNotFound); err != nil {
			return err
		}
		return tx.Save(rec).Error
	})
	return r.wrap("update", err)
}

// Delete removes one row by id.
func (r *Records[T, PT]) Delete(ctx context.Context, id uint) error {
	res := r.store.db.WithContext(ctx).Delete(PT(new(T)), id)
	if res.Error != nil {
		return r.wrap("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Records[T, PT]) wrap(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrCattleNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s %T: %w", op, new(T), err)
}
