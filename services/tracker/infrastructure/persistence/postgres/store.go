package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ghuser/worktrack/pkg/database"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// store is the gorm implementation shared by every aggregate repository.
// T is the domain aggregate and R its table record.
type store[T any, R any] struct {
	db       *database.Database
	name     string
	notFound error
	conflict error
	preload  []string

	toRecord func(*T) *R
	toModel  func(*R) *T

	// Optional hooks run inside the write transaction.
	afterSave   func(ctx context.Context, tx *gorm.DB, aggregate *T) error
	afterUpdate func(ctx context.Context, tx *gorm.DB, aggregate *T) error
	afterDelete func(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

var _ repositories.Repository[models.Board] = (*store[models.Board, BoardRecord])(nil)

// Save inserts a new aggregate. Returns the conflict error on unique
// constraint violations.
func (s *store[T, R]) Save(ctx context.Context, aggregate *T) error {
	rec := s.toRecord(aggregate)
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			if isUniqueViolation(err) {
				return s.conflict
			}
			return fmt.Errorf("insert %s: %w", s.name, err)
		}
		if s.afterSave != nil {
			if err := s.afterSave(ctx, tx, aggregate); err != nil {
				return fmt.Errorf("after insert %s: %w", s.name, err)
			}
		}
		return nil
	})
}

// GetByID loads one aggregate. Returns the not-found error when absent.
func (s *store[T, R]) GetByID(ctx context.Context, id models.ID[T]) (*T, error) {
	var rec R
	if err := s.query(ctx).First(&rec, "id = ?", id.UUID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, fmt.Errorf("query %s: %w", s.name, err)
	}
	return s.toModel(&rec), nil
}

// List returns a page ordered by creation time and the unpaginated total.
func (s *store[T, R]) List(ctx context.Context, opts repositories.QueryOpts) ([]*T, int, error) {
	var total int64
	if err := s.db.DB().WithContext(ctx).Model(new(R)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.name, err)
	}

	q := s.query(ctx).Order("created_at ASC").Order("id ASC").Offset(opts.Offset)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	var recs []R
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("query %s list: %w", s.name, err)
	}

	out := make([]*T, len(recs))
	for i := range recs {
		out[i] = s.toModel(&recs[i])
	}
	return out, int(total), nil
}

// Update overwrites every mutable column of an existing aggregate.
func (s *store[T, R]) Update(ctx context.Context, aggregate *T) error {
	rec := s.toRecord(aggregate)
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(rec).Select("*").Omit("created_at", clause.Associations).Updates(rec)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return s.conflict
			}
			return fmt.Errorf("update %s: %w", s.name, res.Error)
		}
		if res.RowsAffected == 0 {
			return s.notFound
		}
		if s.afterUpdate != nil {
			if err := s.afterUpdate(ctx, tx, aggregate); err != nil {
				return fmt.Errorf("after update %s: %w", s.name, err)
			}
		}
		return nil
	})
}

// Delete removes an aggregate. Returns the not-found error when absent.
func (s *store[T, R]) Delete(ctx context.Context, id models.ID[T]) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(new(R), "id = ?", id.UUID())
		if res.Error != nil {
			return fmt.Errorf("delete %s: %w", s.name, res.Error)
		}
		if res.RowsAffected == 0 {
			return s.notFound
		}
		if s.afterDelete != nil {
			if err := s.afterDelete(ctx, tx, id.UUID()); err != nil {
				return fmt.Errorf("after delete %s: %w", s.name, err)
			}
		}
		return nil
	})
}

// Exists reports whether an aggregate with the given ID is stored.
func (s *store[T, R]) Exists(ctx context.Context, id models.ID[T]) (bool, error) {
	var n int64
	if err := s.db.DB().WithContext(ctx).Model(new(R)).Where("id = ?", id.UUID()).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check %s exists: %w", s.name, err)
	}
	return n > 0, nil
}

func (s *store[T, R]) query(ctx context.Context) *gorm.DB {
	q := s.db.DB().WithContext(ctx)
	for _, p := range s.preload {
		q = q.Preload(p)
	}
	return q
}

// isUniqueViolation recognises both gorm's translated error and a raw
// PostgreSQL 23505 that reaches us untranslated.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
