package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfessionalWeeklyPattern(t *testing.T) {
	t.Parallel()

	var p Professional
	p.SetWorkingDays(time.Monday, time.Wednesday, time.Sunday)

	assert.True(t, p.WorksOn(time.Monday))
	assert.False(t, p.WorksOn(time.Tuesday))
	assert.True(t, p.WorksOn(time.Sunday))
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Sunday}, p.WorkingDays())

	p.SetWorkingDays(time.Friday)
	assert.Equal(t, []time.Weekday{time.Friday}, p.WorkingDays())
}

func TestProfessionalWithinHoursIsHalfOpen(t *testing.T) {
	t.Parallel()

	p := Professional{StartTime: NewClock(9, 0), EndTime: NewClock(18, 0)}

	assert.False(t, p.WithinHours(NewClock(8, 59)))
	assert.True(t, p.WithinHours(NewClock(9, 0)))
	assert.True(t, p.WithinHours(NewClock(17, 59)))
	assert.False(t, p.WithinHours(NewClock(18, 0)))
}

func TestProfessionalServes(t *testing.T) {
	t.Parallel()

	p := Professional{Categories: []ServiceCategory{{ID: 1, Kind: CategoryHair}, {ID: 3, Kind: CategoryNails}}}
	assert.True(t, p.Serves(1))
	assert.False(t, p.Serves(2))
}
