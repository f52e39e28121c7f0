// Package tenant carries the salon a unit of work is scoped to.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoTenant is returned by writes that must belong to a salon when the
// current scope is None.
var ErrNoTenant = errors.New("no tenant in scope")

// Scope is the salon the current request or job works on. The zero value
// is None, meaning unscoped.
type Scope struct {
	salonID uuid.UUID
	set     bool
}

var None = Scope{}

func For(salonID uuid.UUID) Scope {
	if salonID == uuid.Nil {
		return None
	}
	return Scope{salonID: salonID, set: true}
}

// ForRef converts a nullable salon reference.
func ForRef(salonID *uuid.UUID) Scope {
	if salonID == nil {
		return None
	}
	return For(*salonID)
}

func (s Scope) IsNone() bool { return !s.set }

// SalonID returns the scoped salon and whether one is set.
func (s Scope) SalonID() (uuid.UUID, bool) {
	return s.salonID, s.set
}

// Require returns the salon or ErrNoTenant.
func (s Scope) Require() (uuid.UUID, error) {
	if !s.set {
		return uuid.Nil, ErrNoTenant
	}
	return s.salonID, nil
}

func (s Scope) String() string {
	if !s.set {
		return "none"
	}
	return s.salonID.String()
}

type ctxKey string

const scopeKey ctxKey = "SALON_TENANT_SCOPE"

// WithScope returns a derived context carrying scope. A later call on the
// derived context overrides it.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// FromContext returns the current scope, or None when it was never set.
func FromContext(ctx context.Context) Scope {
	if ctx == nil {
		return None
	}
	s, ok := ctx.Value(scopeKey).(Scope)
	if !ok {
		return None
	}
	return s
}
