package scheduling

import (
	"context"
	"testing"
	"time"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// Monday.
	today    = time.Date(2024, time.June, 3, 7, 0, 0, 0, time.UTC)
	monday   = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC)
)

func weekdayProfessional() models.Professional {
	p := models.Professional{
		ID:        uuid.New(),
		StartTime: models.NewClock(9, 0),
		EndTime:   models.NewClock(18, 0),
		IsActive:  true,
	}
	p.SetWorkingDays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	return p
}

func TestCheckAvailabilityWeekdayScenario(t *testing.T) {
	t.Parallel()

	p := weekdayProfessional()
	tests := []struct {
		name string
		date time.Time
		at   models.ClockTime
		rule Rule
	}{
		{"saturday morning", saturday, models.NewClock(10, 0), RuleWeekday},
		{"saturday opening", saturday, models.NewClock(9, 0), RuleWeekday},
		{"monday before window", monday, models.NewClock(8, 59), RuleTimeWindow},
		{"monday at start", monday, models.NewClock(9, 0), ""},
		{"monday last minute", monday, models.NewClock(17, 59), ""},
		{"monday at end", monday, models.NewClock(18, 0), RuleTimeWindow},
		{"sunday", monday.AddDate(0, 0, -1), models.NewClock(10, 0), RuleWeekday},
		{"past monday", time.Date(2024, time.May, 27, 0, 0, 0, 0, time.UTC), models.NewClock(10, 0), RulePastDate},
		{"today", today, models.NewClock(10, 0), ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckAvailability(p, tt.date, tt.at, today)
			if tt.rule == "" {
				assert.NoError(t, err)
				return
			}
			rule, ok := RuleOf(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestCheckAvailabilityShortCircuits(t *testing.T) {
	t.Parallel()

	p := weekdayProfessional()
	// Past, on a Saturday, out of hours: the past rule wins.
	err := CheckAvailability(p, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), models.NewClock(23, 0), today)
	rule, _ := RuleOf(err)
	assert.Equal(t, RulePastDate, rule)

	// Saturday out of hours: the weekday rule wins.
	err = CheckAvailability(p, saturday, models.NewClock(23, 0), today)
	rule, _ = RuleOf(err)
	assert.Equal(t, RuleWeekday, rule)
}

func TestCheckAvailabilityComparesCalendarDays(t *testing.T) {
	t.Parallel()

	p := weekdayProfessional()
	lateToday := time.Date(2024, time.June, 3, 23, 30, 0, 0, time.UTC)
	assert.NoError(t, CheckAvailability(p, monday.AddDate(0, 0, -7), models.NewClock(9, 0), lateToday))
}

func TestValidatorSlotTaken(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	p := weekdayProfessional()
	existing := models.Appointment{
		ID:             uuid.New(),
		ProfessionalID: p.ID,
		Date:           monday,
		Time:           models.NewClock(9, 0),
		Status:         models.StatusConfirmed,
	}
	store.appointments[existing.ID] = existing

	v := NewValidator(store, func() time.Time { return today })
	ctx := context.Background()

	rule, _ := RuleOf(v.Validate(ctx, p, monday, models.NewClock(9, 0), nil))
	assert.Equal(t, RuleSlotTaken, rule)

	assert.NoError(t, v.Validate(ctx, p, monday, models.NewClock(9, 0), &existing.ID), "an appointment does not collide with itself")
	assert.NoError(t, v.Validate(ctx, p, monday, models.NewClock(9, 30), nil))

	existing.Status = models.StatusCancelled
	store.appointments[existing.ID] = existing
	assert.NoError(t, v.Validate(ctx, p, monday, models.NewClock(9, 0), nil), "cancelled appointments free the slot")
}
