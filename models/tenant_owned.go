package models

import "github.com/google/uuid"

// Owned is embedded by every salon-owned row. The salon is never filled in
// implicitly; callers stamp it (see repository.Scoped.Stamp).
type Owned struct {
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
}

func (o *Owned) SetSalonID(id uuid.UUID) { o.SalonID = id }

func (o *Owned) OwnerSalonID() uuid.UUID { return o.SalonID }

// TenantOwned is implemented by pointers to models embedding Owned.
type TenantOwned interface {
	SetSalonID(id uuid.UUID)
	OwnerSalonID() uuid.UUID
}
