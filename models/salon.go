package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Salon is the tenant. Everything a salon owns carries its ID in salon_id.
type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Slug    string    `gorm:"uniqueIndex;not null" json:"slug"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	Address string    `json:"address"`

	HairEnabled  bool `gorm:"not null" json:"hairEnabled"`
	SkinEnabled  bool `gorm:"not null" json:"skinEnabled"`
	NailsEnabled bool `gorm:"not null" json:"nailsEnabled"`

	WhatsAppNotifications bool `gorm:"not null" json:"whatsAppNotifications"`
	SMSNotifications      bool `gorm:"not null" json:"smsNotifications"`

	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	Users []User `gorm:"foreignKey:SalonID" json:"-"`
}

// NewSalon returns a salon with every category enabled.
func NewSalon(name, slug string) Salon {
	return Salon{
		Name:             name,
		Slug:             slug,
		HairEnabled:      true,
		SkinEnabled:      true,
		NailsEnabled:     true,
		SMSNotifications: true,
		IsActive:         true,
	}
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// CategoryEnabled reports whether the salon offers services of the given kind.
func (s Salon) CategoryEnabled(kind CategoryKind) bool {
	switch kind {
	case CategoryHair:
		return s.HairEnabled
	case CategorySkin:
		return s.SkinEnabled
	case CategoryNails:
		return s.NailsEnabled
	}
	return false
}

// DisabledCategories lists the kinds the salon switched off.
func (s Salon) DisabledCategories() []CategoryKind {
	var out []CategoryKind
	for _, kind := range CategoryKinds {
		if !s.CategoryEnabled(kind) {
			out = append(out, kind)
		}
	}
	return out
}
