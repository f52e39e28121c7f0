package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Professional is the bookable profile of a staff member. Availability is a
// single daily window [StartTime, EndTime) on the flagged weekdays.
type Professional struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Owned

	UserID     uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User       User              `gorm:"foreignKey:UserID" json:"user"`
	Categories []ServiceCategory `gorm:"many2many:professional_categories" json:"categories"`

	Bio         string `json:"bio"`
	Specialties string `json:"specialties"`

	StartTime ClockTime `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   ClockTime `gorm:"type:varchar(5);not null" json:"endTime"`

	WorksMonday    bool `gorm:"not null" json:"worksMonday"`
	WorksTuesday   bool `gorm:"not null" json:"worksTuesday"`
	WorksWednesday bool `gorm:"not null" json:"worksWednesday"`
	WorksThursday  bool `gorm:"not null" json:"worksThursday"`
	WorksFriday    bool `gorm:"not null" json:"worksFriday"`
	WorksSaturday  bool `gorm:"not null" json:"worksSaturday"`
	WorksSunday    bool `gorm:"not null" json:"worksSunday"`

	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// WorksOn reports the day flag for a weekday.
func (p Professional) WorksOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return p.WorksMonday
	case time.Tuesday:
		return p.WorksTuesday
	case time.Wednesday:
		return p.WorksWednesday
	case time.Thursday:
		return p.WorksThursday
	case time.Friday:
		return p.WorksFriday
	case time.Saturday:
		return p.WorksSaturday
	case time.Sunday:
		return p.WorksSunday
	}
	return false
}

// SetWorkingDays replaces all seven flags.
func (p *Professional) SetWorkingDays(days ...time.Weekday) {
	p.WorksMonday, p.WorksTuesday, p.WorksWednesday = false, false, false
	p.WorksThursday, p.WorksFriday, p.WorksSaturday, p.WorksSunday = false, false, false, false
	for _, d := range days {
		switch d {
		case time.Monday:
			p.WorksMonday = true
		case time.Tuesday:
			p.WorksTuesday = true
		case time.Wednesday:
			p.WorksWednesday = true
		case time.Thursday:
			p.WorksThursday = true
		case time.Friday:
			p.WorksFriday = true
		case time.Saturday:
			p.WorksSaturday = true
		case time.Sunday:
			p.WorksSunday = true
		}
	}
}

// WorkingDays lists flagged days Monday first.
func (p Professional) WorkingDays() []time.Weekday {
	var days []time.Weekday
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		if p.WorksOn(d) {
			days = append(days, d)
		}
	}
	return days
}

// WithinHours reports start <= at < end.
func (p Professional) WithinHours(at ClockTime) bool {
	return !at.Before(p.StartTime) && at.Before(p.EndTime)
}

// Serves reports whether the professional performs services of a category.
func (p Professional) Serves(categoryID uint) bool {
	for _, c := range p.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
