package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a client may still cancel.
func (s AppointmentStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SourcesFor lists the statuses from which `to` is reachable.
func SourcesFor(to AppointmentStatus) []AppointmentStatus {
	var out []AppointmentStatus
	for from, targets := range statusTransitions {
		for _, t := range targets {
			if t == to {
				out = append(out, from)
			}
		}
	}
	return out
}

// Appointment occupies the slot (professional, date, time) unless cancelled.
// The database enforces that with a partial unique index.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Owned

	ClientID       uuid.UUID    `gorm:"type:uuid;index;not null" json:"clientId"`
	Client         User         `gorm:"foreignKey:ClientID" json:"client"`
	ProfessionalID uuid.UUID    `gorm:"type:uuid;index;not null" json:"professionalId"`
	Professional   Professional `gorm:"foreignKey:ProfessionalID" json:"professional"`
	ServiceID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"serviceId"`
	Service        Service      `gorm:"foreignKey:ServiceID" json:"service"`

	Date   time.Time         `gorm:"column:slot_date;type:date;not null" json:"date"`
	Time   ClockTime         `gorm:"column:slot_time;type:varchar(5);not null" json:"time"`
	Status AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes  string            `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
