// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderRecorder counts reminder attempts.
type ReminderRecorder interface {
	ReminderSent(channel, status string)
}

type ReminderService struct {
	db       *gorm.DB
	sender   Sender
	logger   *zap.Logger
	recorder ReminderRecorder
	now      func() time.Time
	cron     *cron.Cron
}

// NewReminderService wires the service. now must return time in the salon
// timezone; recorder may be nil.
func NewReminderService(db *gorm.DB, sender Sender, logger *zap.Logger, recorder ReminderRecorder, now func() time.Time) *ReminderService {
	if now == nil {
		now = time.Now
	}
	return &ReminderService{db: db, sender: sender, logger: logger, recorder: recorder, now: now}
}

// StartScheduler runs SendDailyReminders on the cron schedule.
func (s *ReminderService) StartScheduler(schedule string, loc *time.Location) error {
	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.SendDailyReminders(context.Background()); err != nil {
			s.logger.Error("daily reminders failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Info("reminder scheduler started", zap.String("schedule", schedule))
	return nil
}

// StopScheduler waits for a running job to finish.
func (s *ReminderService) StopScheduler() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// SendDailyReminders processes every active salon, each under its own
// tenant scope, and returns how many reminders were sent.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (int, error) {
	s.logger.Info("starting daily reminder processing")

	var salons []models.Salon
	if err := s.db.WithContext(ctx).Find(&salons, "is_active = ?", true).Error; err != nil {
		return 0, fmt.Errorf("fetch salons: %w", err)
	}

	total := 0
	for _, salon := range salons {
		sent, err := s.ProcessSalonReminders(tenant.WithScope(ctx, tenant.For(salon.ID)), salon)
		if err != nil {
			s.logger.Error("salon reminders failed", zap.String("salon_id", salon.ID.String()), zap.Error(err))
			continue
		}
		total += sent
	}

	s.logger.Info("daily reminder processing completed", zap.Int("sent", total))
	return total, nil
}

// ProcessSalonReminders messages clients with an active appointment
// tomorrow. ctx must be scoped to salon.
func (s *ReminderService) ProcessSalonReminders(ctx context.Context, salon models.Salon) (int, error) {
	if !salon.WhatsAppNotifications && !salon.SMSNotifications {
		return 0, nil
	}

	scoped := repository.FromContext(ctx, s.db)
	tomorrow := utils.DateOnly(s.now()).AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := scoped.Query(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional.User").
		Where("slot_date = ? AND status IN ?", tomorrow,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Where("id NOT IN (?)", s.db.Model(&models.ReminderLog{}).Select("appointment_id").Where("status = ?", "sent")).
		Find(&appointments).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, appt := range appointments {
		if s.remind(ctx, scoped, salon, appt) {
			sent++
		}
	}
	return sent, nil
}

// Channel picks WhatsApp when the salon enabled it and the number is
// E.164, SMS otherwise. It returns "" when no channel applies.
func Channel(salon models.Salon, phone string) string {
	if phone == "" {
		return ""
	}
	if salon.WhatsAppNotifications && utils.IsE164(phone) {
		return ChannelWhatsApp
	}
	if salon.SMSNotifications {
		return ChannelSMS
	}
	return ""
}

func ReminderMessage(salon models.Salon, appt models.Appointment) string {
	return fmt.Sprintf("Hi %s, this is a reminder of your %s appointment at %s on %s at %s with %s.",
		appt.Client.FirstName,
		appt.Service.Name,
		salon.Name,
		appt.Date.Format(utils.DateLayout),
		appt.Time,
		appt.Professional.User.FullName())
}

func (s *ReminderService) remind(ctx context.Context, scoped *repository.Scoped, salon models.Salon, appt models.Appointment) bool {
	channel := Channel(salon, appt.Client.Phone)
	if channel == "" {
		return false
	}

	message := ReminderMessage(salon, appt)
	to := utils.CleanPhone(appt.Client.Phone)

	status, errorMsg := "sent", ""
	sid, err := s.sender.Send(ctx, channel, to, message)
	if err != nil {
		s.logger.Warn("failed to send reminder",
			zap.String("appointment_id", appt.ID.String()),
			zap.String("channel", channel),
			zap.Error(err))
		status, errorMsg = "failed", err.Error()
	} else {
		s.logger.Info("reminder sent",
			zap.String("appointment_id", appt.ID.String()),
			zap.String("channel", channel),
			zap.String("sid", sid))
	}
	if s.recorder != nil {
		s.recorder.ReminderSent(channel, status)
	}

	entry := models.ReminderLog{
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        s.now(),
	}
	if err := scoped.Create(ctx, &entry); err != nil {
		s.logger.Error("failed to log reminder", zap.String("appointment_id", appt.ID.String()), zap.Error(err))
	}
	return status == "sent"
}
