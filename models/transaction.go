package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type TransactionCategory string

const (
	LedgerService   TransactionCategory = "service"
	LedgerSupplier  TransactionCategory = "supplier"
	LedgerSalary    TransactionCategory = "salary"
	LedgerRent      TransactionCategory = "rent"
	LedgerUtilities TransactionCategory = "utilities"
	LedgerOther     TransactionCategory = "other"
)

// Transaction is a ledger line: money in or out of the salon.
type Transaction struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Owned

	Type        TransactionType     `gorm:"type:varchar(20);not null;index" json:"type"`
	Category    TransactionCategory `gorm:"type:varchar(30);not null" json:"category"`
	Description string              `gorm:"not null" json:"description"`
	Amount      decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time           `gorm:"type:date;not null;index" json:"date"`
	Paid        bool                `gorm:"not null" json:"paid"`

	AppointmentID  *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId,omitempty"`
	ProfessionalID *uuid.UUID `gorm:"type:uuid;index" json:"professionalId,omitempty"`
	Notes          string     `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
