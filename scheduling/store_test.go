package scheduling

import (
	"context"
	"sync"
	"time"

	"salonhub-backend/models"

	"github.com/google/uuid"
)

// memStore mimics the postgres store, including the active slot index.
type memStore struct {
	mu            sync.Mutex
	salons        map[uuid.UUID]models.Salon
	services      map[uuid.UUID]models.Service
	professionals map[uuid.UUID]models.Professional
	appointments  map[uuid.UUID]models.Appointment
	income        []models.Transaction
	incomeErr     error
}

func newMemStore() *memStore {
	return &memStore{
		salons:        map[uuid.UUID]models.Salon{},
		services:      map[uuid.UUID]models.Service{},
		professionals: map[uuid.UUID]models.Professional{},
		appointments:  map[uuid.UUID]models.Appointment{},
	}
}

func (m *memStore) FindSalon(_ context.Context, id uuid.UUID) (*models.Salon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.salons[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memStore) FindService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memStore) FindProfessional(_ context.Context, id uuid.UUID) (*models.Professional, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.professionals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *memStore) FindAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *memStore) takenLocked(professionalID uuid.UUID, date time.Time, at models.ClockTime, exclude *uuid.UUID) bool {
	for _, a := range m.appointments {
		if exclude != nil && a.ID == *exclude {
			continue
		}
		if a.ProfessionalID == professionalID && a.Date.Equal(date) && a.Time == at && a.Status != models.StatusCancelled {
			return true
		}
	}
	return false
}

func (m *memStore) SlotTaken(_ context.Context, professionalID uuid.UUID, date time.Time, at models.ClockTime, exclude *uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.takenLocked(professionalID, date, at, exclude), nil
}

func (m *memStore) CreateAppointment(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.takenLocked(a.ProfessionalID, a.Date, a.Time, nil) {
		return ErrSlotConflict
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.appointments[a.ID] = *a
	return nil
}

func (m *memStore) MoveAppointment(_ context.Context, id uuid.UUID, date time.Time, at models.ClockTime) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return ErrNotFound
	}
	if m.takenLocked(a.ProfessionalID, date, at, &id) {
		return ErrSlotConflict
	}
	a.Date, a.Time = date, at
	m.appointments[id] = a
	return nil
}

func (m *memStore) UpdateStatus(_ context.Context, id uuid.UUID, from []models.AppointmentStatus, to models.AppointmentStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if a.Status == s {
			a.Status = to
			m.appointments[id] = a
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CompleteWithIncome(_ context.Context, a *models.Appointment, from models.AppointmentStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.appointments[a.ID]
	if !ok || stored.Status != from {
		return false, nil
	}
	if m.incomeErr != nil {
		return false, m.incomeErr
	}
	stored.Status = models.StatusCompleted
	m.appointments[a.ID] = stored
	id := a.ID
	m.income = append(m.income, models.Transaction{
		Type:          models.TransactionIncome,
		Category:      models.LedgerService,
		AppointmentID: &id,
	})
	return true, nil
}

func (m *memStore) count(professionalID uuid.UUID, date time.Time, at models.ClockTime) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.appointments {
		if a.ProfessionalID == professionalID && a.Date.Equal(date) && a.Time == at && a.Status != models.StatusCancelled {
			n++
		}
	}
	return n
}
