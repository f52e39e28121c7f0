package models

import (
	"strings"
	"time"

	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}

// User is the authenticated principal. SalonID is nil for global operators
// that belong to no salon.
type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SalonID    *uuid.UUID `gorm:"type:uuid;index" json:"salonId"`
	Username   string     `gorm:"uniqueIndex;not null" json:"username"`
	Email      string     `gorm:"index" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	NationalID *string    `gorm:"uniqueIndex" json:"nationalId,omitempty"`
	Phone      string     `json:"phone"`
	Role       Role       `gorm:"type:varchar(20);not null" json:"role"`

	Salon *Salon `gorm:"foreignKey:SalonID" json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"not null" json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Hash the plain password and assign an ID before the first insert.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// SalonRef returns the user's salon and whether there is one.
func (u User) SalonRef() (uuid.UUID, bool) {
	if u.SalonID == nil || *u.SalonID == uuid.Nil {
		return uuid.Nil, false
	}
	return *u.SalonID, true
}
