// controllers/reminder.go
package controllers

import (
	"net/http"

	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Deps
	Reminders *services.ReminderService
}

// GetReminderLogs lists reminder attempts of the salon, newest first.
func (rc *ReminderController) GetReminderLogs(c *gin.Context) {
	q := rc.scoped(c).Query(c.Request.Context()).Order("sent_at DESC").Limit(200)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var logs []models.ReminderLog
	if err := q.Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// RunReminders sends tomorrow's reminders for the caller's salon now.
func (rc *ReminderController) RunReminders(c *gin.Context) {
	if rc.Reminders == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Reminders are not configured")
		return
	}
	salonID, err := tenant.FromContext(c.Request.Context()).Require()
	if err != nil {
		rc.respondDomainError(c, err)
		return
	}

	var salon models.Salon
	if err := rc.DB.First(&salon, "id = ?", salonID).Error; err != nil {
		rc.respondDomainError(c, err)
		return
	}

	sent, err := rc.Reminders.ProcessSalonReminders(c.Request.Context(), salon)
	if err != nil {
		rc.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}
