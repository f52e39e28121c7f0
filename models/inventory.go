package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaterialCategory string

const (
	MaterialHair    MaterialCategory = "hair"
	MaterialSkin    MaterialCategory = "skin"
	MaterialNails   MaterialCategory = "nails"
	MaterialGeneral MaterialCategory = "general"
)

type Material struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Owned

	Name         string           `gorm:"not null" json:"name"`
	Category     MaterialCategory `gorm:"type:varchar(20);not null" json:"category"`
	Description  string           `json:"description"`
	Quantity     decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit         string           `gorm:"not null" json:"unit"`
	UnitCost     decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"unitCost"`
	MinimumStock decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"minimumStock"`

	LowStock bool `gorm:"-" json:"lowStock"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Material) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

func (m *Material) AfterFind(tx *gorm.DB) (err error) {
	m.LowStock = m.IsLowStock()
	return
}

// IsLowStock is quantity <= minimum.
func (m Material) IsLowStock() bool {
	return m.Quantity.LessThanOrEqual(m.MinimumStock)
}

type MovementType string

const (
	MovementIn     MovementType = "in"
	MovementOut    MovementType = "out"
	MovementAdjust MovementType = "adjust"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidMovement   = errors.New("invalid stock movement")
)

// Apply returns the quantity after a movement. In and out take a positive
// amount; adjust sets the absolute quantity. Stock never goes negative.
func (m Material) Apply(t MovementType, qty decimal.Decimal) (decimal.Decimal, error) {
	if qty.IsNegative() || (t != MovementAdjust && qty.IsZero()) {
		return decimal.Zero, fmt.Errorf("%w: quantity %s", ErrInvalidMovement, qty)
	}
	switch t {
	case MovementIn:
		return m.Quantity.Add(qty), nil
	case MovementOut:
		if qty.GreaterThan(m.Quantity) {
			return decimal.Zero, fmt.Errorf("%w: %s %s left", ErrInsufficientStock, m.Quantity, m.Unit)
		}
		return m.Quantity.Sub(qty), nil
	case MovementAdjust:
		return qty, nil
	}
	return decimal.Zero, fmt.Errorf("%w: type %q", ErrInvalidMovement, t)
}

type StockMovement struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Owned

	MaterialID uuid.UUID       `gorm:"type:uuid;index;not null" json:"materialId"`
	Type       MovementType    `gorm:"type:varchar(20);not null" json:"type"`
	Quantity   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Reason     string          `json:"reason"`
	UserID     *uuid.UUID      `gorm:"type:uuid" json:"userId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (s *StockMovement) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
