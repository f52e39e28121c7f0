// Package repository reads salon-owned rows through the tenant scope of
// the caller.
package repository

import (
	"context"

	"salonhub-backend/models"
	"salonhub-backend/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SalonColumn is the ownership column carried by every tenant table.
const SalonColumn = "salon_id"

// Scoped wraps a gorm handle with the tenant scope it reads under.
// Reads are filtered on salon_id when the scope is set and unfiltered when
// it is None. Writes are not rewritten; use Stamp.
type Scoped struct {
	db    *gorm.DB
	scope tenant.Scope
}

func New(db *gorm.DB, scope tenant.Scope) *Scoped {
	return &Scoped{db: db, scope: scope}
}

// FromContext binds db to the scope carried by ctx.
func FromContext(ctx context.Context, db *gorm.DB) *Scoped {
	return New(db, tenant.FromContext(ctx))
}

func (s *Scoped) Scope() tenant.Scope { return s.scope }

// DB exposes the unscoped handle for global tables and writes.
func (s *Scoped) DB() *gorm.DB { return s.db }

// Query starts a statement filtered to the current salon.
func (s *Scoped) Query(ctx context.Context) *gorm.DB {
	return s.apply(s.db.WithContext(ctx))
}

// Model starts a filtered statement on model's table.
func (s *Scoped) Model(ctx context.Context, model interface{}) *gorm.DB {
	return s.Query(ctx).Model(model)
}

// Tx returns a Scoped bound to tx with the same scope.
func (s *Scoped) Tx(tx *gorm.DB) *Scoped {
	return &Scoped{db: tx, scope: s.scope}
}

func (s *Scoped) apply(db *gorm.DB) *gorm.DB {
	id, ok := s.scope.SalonID()
	if !ok {
		return db
	}
	return db.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: SalonColumn},
		Value:  id,
	})
}

// Stamp writes the scoped salon onto record.
func (s *Scoped) Stamp(record models.TenantOwned) error {
	id, err := s.scope.Require()
	if err != nil {
		return err
	}
	record.SetSalonID(id)
	return nil
}

// Create stamps and inserts record.
func (s *Scoped) Create(ctx context.Context, record models.TenantOwned) error {
	if err := s.Stamp(record); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(record).Error
}

// All returns every T visible in the scope. No ordering is applied.
func All[T any](ctx context.Context, s *Scoped) ([]T, error) {
	var out []T
	if err := s.Query(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// First loads the T with the given id, or gorm.ErrRecordNotFound when it
// does not exist in the scope.
func First[T any](ctx context.Context, s *Scoped, id uuid.UUID, preload ...string) (*T, error) {
	var out T
	q := s.Query(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if err := q.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
