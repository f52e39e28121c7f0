package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	store        *memStore
	booker       *Booker
	ctx          context.Context
	salon        models.Salon
	service      models.Service
	professional models.Professional
	client       uuid.UUID
	recorder     *countingRecorder
}

type countingRecorder struct {
	mu        sync.Mutex
	accepted  int
	rejected  map[Rule]int
	cancelled int
}

func (r *countingRecorder) BookingAccepted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
}

func (r *countingRecorder) BookingRejected(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[rule]++
}

func (r *countingRecorder) AppointmentCancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	salon := models.NewSalon("Studio", "studio")
	salon.ID = uuid.New()
	store.salons[salon.ID] = salon

	hair := models.ServiceCategory{ID: 1, Kind: models.CategoryHair}
	service := models.Service{ID: uuid.New(), CategoryID: hair.ID, Category: hair, Name: "Cut", IsActive: true}
	service.SalonID = salon.ID
	store.services[service.ID] = service

	p := weekdayProfessional()
	p.SalonID = salon.ID
	p.Categories = []models.ServiceCategory{hair}
	store.professionals[p.ID] = p

	rec := &countingRecorder{rejected: map[Rule]int{}}
	return &fixture{
		store:        store,
		booker:       NewBooker(store, zaptest.NewLogger(t), WithClock(func() time.Time { return today }), WithRecorder(rec)),
		ctx:          tenant.WithScope(context.Background(), tenant.For(salon.ID)),
		salon:        salon,
		service:      service,
		professional: p,
		client:       uuid.New(),
		recorder:     rec,
	}
}

func (f *fixture) request(at models.ClockTime) BookingRequest {
	return BookingRequest{
		ClientID:       f.client,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		Date:           monday,
		Time:           at,
	}
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	f := newFixture(t)

	appt, err := f.booker.Book(f.ctx, f.request(models.NewClock(9, 0)))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, monday, appt.Date)
	assert.Equal(t, 1, f.store.count(f.professional.ID, monday, models.NewClock(9, 0)))
	assert.Equal(t, 1, f.recorder.accepted)
}

func TestBookRequiresTenant(t *testing.T) {
	f := newFixture(t)

	_, err := f.booker.Book(context.Background(), f.request(models.NewClock(9, 0)))
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
}

func TestBookRejectsSecondBookingOfSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.booker.Book(f.ctx, f.request(models.NewClock(10, 0)))
	require.NoError(t, err)

	_, err = f.booker.Book(f.ctx, f.request(models.NewClock(10, 0)))
	rule, ok := RuleOf(err)
	require.True(t, ok)
	assert.Equal(t, RuleSlotTaken, rule)
	assert.Equal(t, 1, f.recorder.rejected[RuleSlotTaken])
}

func TestBookEligibility(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		rule  Rule
	}{
		{
			name: "inactive service",
			setup: func(f *fixture) {
				s := f.service
				s.IsActive = false
				f.store.services[s.ID] = s
			},
			rule: RuleServiceUnavailable,
		},
		{
			name: "inactive professional",
			setup: func(f *fixture) {
				p := f.professional
				p.IsActive = false
				f.store.professionals[p.ID] = p
			},
			rule: RuleProfessionalUnavailable,
		},
		{
			name: "professional without the category",
			setup: func(f *fixture) {
				p := f.professional
				p.Categories = []models.ServiceCategory{{ID: 2, Kind: models.CategoryNails}}
				f.store.professionals[p.ID] = p
			},
			rule: RuleCategoryMismatch,
		},
		{
			name: "category disabled by the salon",
			setup: func(f *fixture) {
				s := f.salon
				s.HairEnabled = false
				f.store.salons[s.ID] = s
			},
			rule: RuleCategoryDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			_, err := f.booker.Book(f.ctx, f.request(models.NewClock(9, 0)))
			rule, ok := RuleOf(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestConcurrentBookingsExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	const clients = 16
	var (
		wg       sync.WaitGroup
		start    = make(chan struct{})
		mu       sync.Mutex
		wins     int
		slotErrs int
	)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := f.request(models.NewClock(9, 0))
			req.ClientID = uuid.New()
			<-start
			_, err := f.booker.Book(f.ctx, req)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			if rule, ok := RuleOf(err); ok && rule == RuleSlotTaken {
				slotErrs++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, clients-1, slotErrs)
	assert.Equal(t, 1, f.store.count(f.professional.ID, monday, models.NewClock(9, 0)))
}

// racingStore lets the pre-check pass and then loses on insert, as when a
// concurrent booking commits between the two.
type racingStore struct{ *memStore }

func (racingStore) SlotTaken(context.Context, uuid.UUID, time.Time, models.ClockTime, *uuid.UUID) (bool, error) {
	return false, nil
}

func (racingStore) CreateAppointment(context.Context, *models.Appointment) error {
	return ErrSlotConflict
}

func TestBookTranslatesStorageConflict(t *testing.T) {
	f := newFixture(t)
	booker := NewBooker(racingStore{f.store}, zaptest.NewLogger(t), WithClock(func() time.Time { return today }))

	_, err := booker.Book(f.ctx, f.request(models.NewClock(9, 0)))
	rule, ok := RuleOf(err)
	require.True(t, ok)
	assert.Equal(t, RuleSlotTaken, rule)
	assert.False(t, errors.Is(err, ErrSlotConflict))
}

func TestCancel(t *testing.T) {
	tests := []struct {
		from models.AppointmentStatus
		ok   bool
	}{
		{models.StatusPending, true},
		{models.StatusConfirmed, true},
		{models.StatusInProgress, false},
		{models.StatusCompleted, false},
		{models.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			f := newFixture(t)
			appt, err := f.booker.Book(f.ctx, f.request(models.NewClock(11, 0)))
			require.NoError(t, err)
			stored := f.store.appointments[appt.ID]
			stored.Status = tt.from
			f.store.appointments[appt.ID] = stored

			got, err := f.booker.Cancel(f.ctx, appt.ID, Actor{UserID: f.client})
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, models.StatusCancelled, got.Status)
				assert.Equal(t, models.StatusCancelled, f.store.appointments[appt.ID].Status)
				return
			}
			rule, ok := RuleOf(err)
			require.True(t, ok)
			assert.Equal(t, RuleInvalidTransition, rule)
			assert.Equal(t, tt.from, f.store.appointments[appt.ID].Status)
		})
	}
}

func TestCancelOtherClientsAppointmentIsNotFound(t *testing.T) {
	f := newFixture(t)
	appt, err := f.booker.Book(f.ctx, f.request(models.NewClock(11, 0)))
	require.NoError(t, err)

	_, err = f.booker.Cancel(f.ctx, appt.ID, Actor{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.booker.Cancel(f.ctx, appt.ID, Actor{UserID: uuid.New(), Staff: true})
	assert.NoError(t, err)
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	appt, err := f.booker.Book(f.ctx, f.request(models.NewClock(12, 0)))
	require.NoError(t, err)
	_, err = f.booker.Cancel(f.ctx, appt.ID, Actor{UserID: f.client})
	require.NoError(t, err)

	_, err = f.booker.Book(f.ctx, f.request(models.NewClock(12, 0)))
	assert.NoError(t, err)
}

func TestTransitionLifecycle(t *testing.T) {
	f := newFixture(t)
	appt, err := f.booker.Book(f.ctx, f.request(models.NewClock(14, 0)))
	require.NoError(t, err)

	_, err = f.booker.Transition(f.ctx, appt.ID, models.StatusCompleted)
	rule, _ := RuleOf(err)
	assert.Equal(t, RuleInvalidTransition, rule, "pending cannot jump to completed")

	for _, to := range []models.AppointmentStatus{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted} {
		got, err := f.booker.Transition(f.ctx, appt.ID, to)
		require.NoError(t, err)
		assert.Equal(t, to, got.Status)
	}

	require.Len(t, f.store.income, 1)
	assert.Equal(t, appt.ID, *f.store.income[0].AppointmentID)
}

func TestCompletionRollsBackWhenIncomeFails(t *testing.T) {
	f := newFixture(t)
	appt, err := f.booker.Book(f.ctx, f.request(models.NewClock(15, 0)))
	require.NoError(t, err)
	for _, to := range []models.AppointmentStatus{models.StatusConfirmed, models.StatusInProgress} {
		_, err := f.booker.Transition(f.ctx, appt.ID, to)
		require.NoError(t, err)
	}

	ledgerDown := errors.New("ledger down")
	f.store.mu.Lock()
	f.store.incomeErr = ledgerDown
	f.store.mu.Unlock()

	_, err = f.booker.Transition(f.ctx, appt.ID, models.StatusCompleted)
	assert.ErrorIs(t, err, ledgerDown)

	stored, err := f.store.FindAppointment(f.ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.Empty(t, f.store.income)

	f.store.mu.Lock()
	f.store.incomeErr = nil
	f.store.mu.Unlock()

	got, err := f.booker.Transition(f.ctx, appt.ID, models.StatusCompleted)
	require.NoError(t, err, "completion can be retried")
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.Len(t, f.store.income, 1)
	assert.Equal(t, appt.ID, *f.store.income[0].AppointmentID)
}

func TestReschedule(t *testing.T) {
	f := newFixture(t)
	first, err := f.booker.Book(f.ctx, f.request(models.NewClock(9, 0)))
	require.NoError(t, err)
	second, err := f.booker.Book(f.ctx, f.request(models.NewClock(10, 0)))
	require.NoError(t, err)

	actor := Actor{UserID: f.client}

	// Same slot as itself is fine.
	_, err = f.booker.Reschedule(f.ctx, first.ID, actor, monday, models.NewClock(9, 0))
	require.NoError(t, err)

	_, err = f.booker.Reschedule(f.ctx, first.ID, actor, monday, models.NewClock(10, 0))
	rule, _ := RuleOf(err)
	assert.Equal(t, RuleSlotTaken, rule)

	_, err = f.booker.Reschedule(f.ctx, second.ID, actor, saturday, models.NewClock(10, 0))
	rule, _ = RuleOf(err)
	assert.Equal(t, RuleWeekday, rule)

	moved, err := f.booker.Reschedule(f.ctx, second.ID, actor, monday, models.NewClock(16, 30))
	require.NoError(t, err)
	assert.Equal(t, models.NewClock(16, 30), moved.Time)
	assert.Equal(t, 0, f.store.count(f.professional.ID, monday, models.NewClock(10, 0)))
}
