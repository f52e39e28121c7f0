// controllers/appointment.go
package controllers

import (
	"net/http"

	"salonhub-backend/models"
	"salonhub-backend/scheduling"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentController struct {
	Deps
}

type BookInput struct {
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	Date           string    `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string    `json:"time" binding:"required"` // HH:MM
	Notes          string    `json:"notes"`
}

type StatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

type RescheduleInput struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

func parseSlot(c *gin.Context, date, at string) (scheduling.BookingRequest, bool) {
	d, err := utils.ParseDate(date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return scheduling.BookingRequest{}, false
	}
	t, err := models.ParseClock(at)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return scheduling.BookingRequest{}, false
	}
	return scheduling.BookingRequest{Date: d, Time: t}, true
}

func (ac *AppointmentController) Book(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var input BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	req, ok := parseSlot(c, input.Date, input.Time)
	if !ok {
		return
	}
	req.ClientID = p.UserID
	req.ProfessionalID = input.ProfessionalID
	req.ServiceID = input.ServiceID
	req.Notes = input.Notes

	appt, err := ac.booker(c).Book(c.Request.Context(), req)
	if err != nil {
		ac.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetMine lists the caller's appointments, most recent first.
func (ac *AppointmentController) GetMine(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := ac.scoped(c).Query(c.Request.Context()).
		Preload("Service").
		Preload("Professional.User").
		Where("client_id = ?", p.UserID).
		Order("slot_date DESC, slot_time DESC").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// GetAppointments is the staff agenda. Professionals only see their own.
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	q := ac.scoped(c).Query(c.Request.Context()).
		Preload("Client").
		Preload("Service").
		Preload("Professional.User").
		Order("slot_date, slot_time")

	if raw := c.Query("date"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		q = q.Where("slot_date = ?", d)
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AppointmentStatus(raw)
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown status")
			return
		}
		q = q.Where("status = ?", status)
	}
	if p.Role == string(models.RoleProfessional) {
		q = q.Where("professional_id IN (?)",
			ac.DB.Model(&models.Professional{}).Select("id").Where("user_id = ?", p.UserID))
	}

	var appointments []models.Appointment
	if err := q.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (ac *AppointmentController) Cancel(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	appt, err := ac.booker(c).Cancel(c.Request.Context(), id, scheduling.Actor{UserID: p.UserID, Staff: isStaff(p)})
	if err != nil {
		ac.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ac *AppointmentController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Status.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown status")
		return
	}

	appt, err := ac.booker(c).Transition(c.Request.Context(), id, input.Status)
	if err != nil {
		ac.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ac *AppointmentController) Reschedule(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	slot, ok := parseSlot(c, input.Date, input.Time)
	if !ok {
		return
	}

	appt, err := ac.booker(c).Reschedule(c.Request.Context(), id,
		scheduling.Actor{UserID: p.UserID, Staff: isStaff(p)}, slot.Date, slot.Time)
	if err != nil {
		ac.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
