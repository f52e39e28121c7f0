package scheduling

import (
	"context"
	"errors"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder receives booking outcomes.
type Recorder interface {
	BookingAccepted()
	BookingRejected(rule Rule)
	AppointmentCancelled()
}

type nopRecorder struct{}

func (nopRecorder) BookingAccepted()      {}
func (nopRecorder) BookingRejected(Rule)  {}
func (nopRecorder) AppointmentCancelled() {}

type BookingRequest struct {
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Date           time.Time
	Time           models.ClockTime
	Notes          string
}

// Actor is who asks for a lifecycle change. Staff may act on any
// appointment of the salon, clients only on their own.
type Actor struct {
	UserID uuid.UUID
	Staff  bool
}

// Booker creates and moves appointments through their lifecycle.
type Booker struct {
	store     Store
	validator *Validator
	now       func() time.Time
	logger    *zap.Logger
	recorder  Recorder
}

type Option func(*Booker)

// WithClock sets the source of "today". The returned time should already
// be in the salon's timezone.
func WithClock(now func() time.Time) Option {
	return func(b *Booker) { b.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(b *Booker) {
		if r != nil {
			b.recorder = r
		}
	}
}

func NewBooker(store Store, logger *zap.Logger, opts ...Option) *Booker {
	b := &Booker{
		store:    store,
		now:      time.Now,
		logger:   logger,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.validator = NewValidator(store, b.now)
	return b
}

// Book checks that the service can be booked with the professional,
// validates the slot and stores a pending appointment for the current
// salon.
func (b *Booker) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	salonID, err := tenant.FromContext(ctx).Require()
	if err != nil {
		return nil, err
	}

	appt, err := b.book(ctx, salonID, req)
	if rule, ok := RuleOf(err); ok {
		b.recorder.BookingRejected(rule)
		b.logger.Info("booking rejected",
			zap.String("salon_id", salonID.String()),
			zap.String("professional_id", req.ProfessionalID.String()),
			zap.String("rule", string(rule)))
	}
	if err != nil {
		return nil, err
	}

	b.recorder.BookingAccepted()
	b.logger.Info("appointment booked",
		zap.String("salon_id", salonID.String()),
		zap.String("appointment_id", appt.ID.String()),
		zap.String("date", appt.Date.Format(utils.DateLayout)),
		zap.Stringer("time", appt.Time))
	return appt, nil
}

func (b *Booker) book(ctx context.Context, salonID uuid.UUID, req BookingRequest) (*models.Appointment, error) {
	service, err := b.store.FindService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, reject(RuleServiceUnavailable, "service %q is not available", service.Name)
	}

	professional, err := b.store.FindProfessional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if !professional.IsActive {
		return nil, reject(RuleProfessionalUnavailable, "professional is not available")
	}
	if !professional.Serves(service.CategoryID) {
		return nil, reject(RuleCategoryMismatch, "professional does not perform %q", service.Name)
	}

	salon, err := b.store.FindSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if !salon.CategoryEnabled(service.Category.Kind) {
		return nil, reject(RuleCategoryDisabled, "%s services are not offered by this salon", service.Category.Kind)
	}

	if err := b.validator.Validate(ctx, *professional, req.Date, req.Time, nil); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ClientID:       req.ClientID,
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		Date:           utils.DateOnly(req.Date),
		Time:           req.Time,
		Status:         models.StatusPending,
		Notes:          req.Notes,
	}
	if err := b.store.CreateAppointment(ctx, appt); err != nil {
		if errors.Is(err, ErrSlotConflict) {
			return nil, reject(RuleSlotTaken, "%s at %s was just booked by someone else", appt.Date.Format(utils.DateLayout), appt.Time)
		}
		return nil, err
	}
	return appt, nil
}

func (b *Booker) load(ctx context.Context, id uuid.UUID, actor Actor) (*models.Appointment, error) {
	appt, err := b.store.FindAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Staff && appt.ClientID != actor.UserID {
		return nil, ErrNotFound
	}
	return appt, nil
}

// Cancel moves a pending or confirmed appointment to cancelled. Any other
// status is a rule violation, not an error of the system.
func (b *Booker) Cancel(ctx context.Context, id uuid.UUID, actor Actor) (*models.Appointment, error) {
	appt, err := b.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Cancellable() {
		return nil, reject(RuleInvalidTransition, "a %s appointment cannot be cancelled", appt.Status)
	}

	changed, err := b.store.UpdateStatus(ctx, id, models.SourcesFor(models.StatusCancelled), models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, reject(RuleInvalidTransition, "appointment changed status and can no longer be cancelled")
	}

	appt.Status = models.StatusCancelled
	b.recorder.AppointmentCancelled()
	b.logger.Info("appointment cancelled",
		zap.String("appointment_id", id.String()),
		zap.String("actor_id", actor.UserID.String()))
	return appt, nil
}

// Transition applies a staff status change following the lifecycle table.
// Completing an appointment records its unpaid income.
func (b *Booker) Transition(ctx context.Context, id uuid.UUID, to models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := b.store.FindAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !to.Valid() || !appt.Status.CanTransitionTo(to) {
		return nil, reject(RuleInvalidTransition, "cannot move from %s to %s", appt.Status, to)
	}

	var changed bool
	if to == models.StatusCompleted {
		changed, err = b.store.CompleteWithIncome(ctx, appt, appt.Status)
	} else {
		changed, err = b.store.UpdateStatus(ctx, id, []models.AppointmentStatus{appt.Status}, to)
	}
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, reject(RuleInvalidTransition, "appointment is no longer %s", appt.Status)
	}
	appt.Status = to

	if to == models.StatusCancelled {
		b.recorder.AppointmentCancelled()
	}
	return appt, nil
}

// Reschedule moves an active appointment to another slot of the same
// professional, validating it as if it were new except for itself.
func (b *Booker) Reschedule(ctx context.Context, id uuid.UUID, actor Actor, date time.Time, at models.ClockTime) (*models.Appointment, error) {
	appt, err := b.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Cancellable() {
		return nil, reject(RuleInvalidTransition, "a %s appointment cannot be rescheduled", appt.Status)
	}

	professional, err := b.store.FindProfessional(ctx, appt.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if err := b.validator.Validate(ctx, *professional, date, at, &appt.ID); err != nil {
		return nil, err
	}

	day := utils.DateOnly(date)
	if err := b.store.MoveAppointment(ctx, id, day, at); err != nil {
		if errors.Is(err, ErrSlotConflict) {
			return nil, reject(RuleSlotTaken, "%s at %s was just booked by someone else", day.Format(utils.DateLayout), at)
		}
		return nil, err
	}
	appt.Date, appt.Time = day, at
	return appt, nil
}
