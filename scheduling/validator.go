// Package scheduling decides whether an appointment may occupy a slot and
// owns the appointment lifecycle.
package scheduling

import (
	"context"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
)

// Store is the persistence the scheduler needs. Implementations read
// within the caller's tenant scope.
type Store interface {
	FindSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error)
	FindService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindProfessional(ctx context.Context, id uuid.UUID) (*models.Professional, error)
	FindAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	// SlotTaken reports whether a non-cancelled appointment other than
	// exclude holds the slot.
	SlotTaken(ctx context.Context, professionalID uuid.UUID, date time.Time, at models.ClockTime, exclude *uuid.UUID) (bool, error)

	// CreateAppointment and MoveAppointment return ErrSlotConflict when the
	// slot was taken concurrently.
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	MoveAppointment(ctx context.Context, id uuid.UUID, date time.Time, at models.ClockTime) error

	// UpdateStatus sets the status only when the current one is in from and
	// reports whether a row changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from []models.AppointmentStatus, to models.AppointmentStatus) (bool, error)

	// CompleteWithIncome moves a from `from` to completed and books its unpaid
	// income in one transaction. Either both happen or neither does.
	CompleteWithIncome(ctx context.Context, a *models.Appointment, from models.AppointmentStatus) (bool, error)
}

// CheckAvailability applies the calendar rules in order: not in the past,
// a working weekday, inside the daily window. Dates are compared as
// calendar days.
func CheckAvailability(p models.Professional, date time.Time, at models.ClockTime, today time.Time) error {
	day := utils.DateOnly(date)
	if day.Before(utils.DateOnly(today)) {
		return reject(RulePastDate, "cannot book on %s, it is in the past", day.Format(utils.DateLayout))
	}
	if !p.WorksOn(day.Weekday()) {
		return reject(RuleWeekday, "professional does not work on %s", day.Weekday())
	}
	if !at.Valid() || !p.WithinHours(at) {
		return reject(RuleTimeWindow, "%s is outside working hours %s-%s", at, p.StartTime, p.EndTime)
	}
	return nil
}

// Validator runs CheckAvailability followed by the collision check.
type Validator struct {
	store Store
	now   func() time.Time
}

func NewValidator(store Store, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{store: store, now: now}
}

// Validate is read only. exclude is the appointment being moved, if any.
func (v *Validator) Validate(ctx context.Context, p models.Professional, date time.Time, at models.ClockTime, exclude *uuid.UUID) error {
	if err := CheckAvailability(p, date, at, v.now()); err != nil {
		return err
	}

	taken, err := v.store.SlotTaken(ctx, p.ID, utils.DateOnly(date), at, exclude)
	if err != nil {
		return err
	}
	if taken {
		return reject(RuleSlotTaken, "%s at %s is already booked", utils.DateOnly(date).Format(utils.DateLayout), at)
	}
	return nil
}
