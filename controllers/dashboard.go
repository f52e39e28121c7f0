// controllers/dashboard.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	upcomingLimit    = 10
	recentLimit      = 10
	topServicesLimit = 5
)

type DashboardController struct {
	Deps
}

type UpcomingAppointment struct {
	ID           string `json:"id"`
	Client       string `json:"client"`
	Professional string `json:"professional"`
	Service      string `json:"service"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	When         string `json:"when"` // e.g. "Today", "Tomorrow", "3 days"
	Status       string `json:"status"`
}

type ServiceSummary struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type AdminDashboard struct {
	MonthAppointments int64                 `json:"monthAppointments"`
	TodayAppointments int64                 `json:"todayAppointments"`
	Month             FinancialSummary      `json:"month"`
	LowStockMaterials int64                 `json:"lowStockMaterials"`
	Upcoming          []UpcomingAppointment `json:"upcoming"`
	TopServices       []ServiceSummary      `json:"topServices"`
}

// relativeDay labels day relative to today.
func relativeDay(day, today time.Time) string {
	days := utils.DaysBetween(utils.DateOnly(today), utils.DateOnly(day))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func toUpcoming(a models.Appointment, today time.Time) UpcomingAppointment {
	return UpcomingAppointment{
		ID:           a.ID.String(),
		Client:       a.Client.FullName(),
		Professional: a.Professional.User.FullName(),
		Service:      a.Service.Name,
		Date:         a.Date.Format(utils.DateLayout),
		Time:         a.Time.String(),
		When:         relativeDay(a.Date, today),
		Status:       string(a.Status),
	}
}

// GetDashboard returns the salon overview for admins.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	scoped := dc.scoped(c)
	now := dc.now()
	today := utils.DateOnly(now)
	firstOfMonth := utils.FirstOfMonth(today)
	nextMonth := firstOfMonth.AddDate(0, 1, 0)

	var out AdminDashboard

	if err := scoped.Model(ctx, &models.Appointment{}).
		Where("slot_date >= ? AND slot_date < ? AND status <> ?", firstOfMonth, nextMonth, models.StatusCancelled).
		Count(&out.MonthAppointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count appointments")
		return
	}
	if err := scoped.Model(ctx, &models.Appointment{}).
		Where("slot_date = ? AND status <> ?", today, models.StatusCancelled).
		Count(&out.TodayAppointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count appointments")
		return
	}

	month, err := paidSummary(ctx, scoped, firstOfMonth, nextMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}
	out.Month = month

	if err := scoped.Model(ctx, &models.Material{}).
		Where("quantity <= minimum_stock").
		Count(&out.LowStockMaterials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count materials")
		return
	}

	var upcoming []models.Appointment
	if err := scoped.Query(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional.User").
		Where("slot_date >= ? AND status NOT IN ?", today, []models.AppointmentStatus{models.StatusCancelled, models.StatusCompleted}).
		Order("slot_date, slot_time").
		Limit(upcomingLimit).
		Find(&upcoming).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}
	out.Upcoming = make([]UpcomingAppointment, 0, len(upcoming))
	for _, a := range upcoming {
		out.Upcoming = append(out.Upcoming, toUpcoming(a, now))
	}

	// Top services of the month by completed appointments.
	if err := scoped.Model(ctx, &models.Appointment{}).
		Select("services.name AS name, COUNT(*) AS count, COALESCE(SUM(services.price), 0) AS revenue").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.slot_date >= ? AND appointments.slot_date < ? AND appointments.status = ?",
			firstOfMonth, nextMonth, models.StatusCompleted).
		Group("services.name").
		Order("count DESC").
		Limit(topServicesLimit).
		Scan(&out.TopServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute top services")
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetClientDashboard returns the caller's recent appointments.
func (dc *DashboardController) GetClientDashboard(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	scoped := dc.scoped(c)

	var recent []models.Appointment
	if err := scoped.Query(ctx).
		Preload("Service").
		Preload("Professional.User").
		Where("client_id = ?", p.UserID).
		Order("slot_date DESC, slot_time DESC").
		Limit(recentLimit).
		Find(&recent).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	var pending int64
	if err := scoped.Model(ctx, &models.Appointment{}).
		Where("client_id = ? AND status = ?", p.UserID, models.StatusPending).
		Count(&pending).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count appointments")
		return
	}

	now := dc.now()
	list := make([]UpcomingAppointment, 0, len(recent))
	for _, a := range recent {
		list = append(list, toUpcoming(a, now))
	}
	c.JSON(http.StatusOK, gin.H{"recent": list, "pending": pending})
}
