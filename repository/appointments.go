package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/scheduling"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStore is the postgres implementation of scheduling.Store.
type AppointmentStore struct {
	scoped *Scoped
}

var _ scheduling.Store = (*AppointmentStore)(nil)

func NewAppointmentStore(scoped *Scoped) *AppointmentStore {
	return &AppointmentStore{scoped: scoped}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scheduling.ErrNotFound
	}
	return err
}

func conflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return scheduling.ErrSlotConflict
	}
	return err
}

// FindSalon loads the tenant row itself, which is not salon-owned.
func (s *AppointmentStore) FindSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error) {
	var salon models.Salon
	if err := s.scoped.DB().WithContext(ctx).First(&salon, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &salon, nil
}

func (s *AppointmentStore) FindService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	service, err := First[models.Service](ctx, s.scoped, id, "Category")
	return service, notFound(err)
}

func (s *AppointmentStore) FindProfessional(ctx context.Context, id uuid.UUID) (*models.Professional, error) {
	p, err := First[models.Professional](ctx, s.scoped, id, "Categories")
	return p, notFound(err)
}

func (s *AppointmentStore) FindAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	a, err := First[models.Appointment](ctx, s.scoped, id)
	return a, notFound(err)
}

func (s *AppointmentStore) SlotTaken(ctx context.Context, professionalID uuid.UUID, date time.Time, at models.ClockTime, exclude *uuid.UUID) (bool, error) {
	q := s.scoped.Model(ctx, &models.Appointment{}).
		Where("professional_id = ? AND slot_date = ? AND slot_time = ? AND status <> ?",
			professionalID, date, at, models.StatusCancelled)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *AppointmentStore) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return conflict(s.scoped.Create(ctx, a))
}

func (s *AppointmentStore) MoveAppointment(ctx context.Context, id uuid.UUID, date time.Time, at models.ClockTime) error {
	res := s.scoped.Model(ctx, &models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"slot_date": date, "slot_time": at})
	if res.Error != nil {
		return conflict(res.Error)
	}
	if res.RowsAffected == 0 {
		return scheduling.ErrNotFound
	}
	return nil
}

func (s *AppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, from []models.AppointmentStatus, to models.AppointmentStatus) (bool, error) {
	res := s.scoped.Model(ctx, &models.Appointment{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, conflict(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// CompleteWithIncome moves the appointment to completed and books the
// service price as unpaid income dated on the appointment day. The income
// insert is skipped when the appointment already has one. Both writes share a
// transaction, so a failed insert leaves the status untouched.
func (s *AppointmentStore) CompleteWithIncome(ctx context.Context, a *models.Appointment, from models.AppointmentStatus) (bool, error) {
	changed := false
	err := s.scoped.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := s.scoped.Tx(tx).Model(ctx, &models.Appointment{}).
			Where("id = ? AND status = ?", a.ID, from).
			Update("status", models.StatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		changed = true
		return recordIncome(tx, a)
	})
	if err != nil {
		return false, notFound(err)
	}
	return changed, nil
}

func recordIncome(tx *gorm.DB, a *models.Appointment) error {
	var service models.Service
	if err := tx.First(&service, "id = ?", a.ServiceID).Error; err != nil {
		return err
	}

	var existing int64
	if err := tx.Model(&models.Transaction{}).Where("appointment_id = ?", a.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	apptID, profID := a.ID, a.ProfessionalID
	entry := models.Transaction{
		Type:           models.TransactionIncome,
		Category:       models.LedgerService,
		Description:    fmt.Sprintf("%s on %s", service.Name, a.Date.Format(utils.DateLayout)),
		Amount:         service.Price,
		Date:           a.Date,
		AppointmentID:  &apptID,
		ProfessionalID: &profID,
	}
	entry.SalonID = a.SalonID
	return tx.Create(&entry).Error
}
