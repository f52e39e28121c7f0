// controllers/professional.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfessionalController struct {
	Deps
}

// ScheduleInput is a weekly pattern. Days use ISO numbering, Monday = 1.
type ScheduleInput struct {
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	WorkingDays []int  `json:"workingDays" binding:"required,min=1,dive,min=1,max=7"`
}

type CreateProfessionalInput struct {
	Username    string `json:"username" binding:"required,min=3"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Bio         string `json:"bio"`
	Specialties string `json:"specialties"`
	CategoryIDs []uint `json:"categoryIds" binding:"required,min=1"`
	ScheduleInput
}

type UpdateProfessionalInput struct {
	Bio         *string        `json:"bio"`
	Specialties *string        `json:"specialties"`
	CategoryIDs []uint         `json:"categoryIds"`
	Schedule    *ScheduleInput `json:"schedule"`
	IsActive    *bool          `json:"isActive"`
}

// apply validates the window and writes it onto p.
func (in ScheduleInput) apply(p *models.Professional) error {
	start, err := models.ParseClock(in.StartTime)
	if err != nil {
		return err
	}
	end, err := models.ParseClock(in.EndTime)
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return errors.New("startTime must be before endTime")
	}

	days := make([]time.Weekday, 0, len(in.WorkingDays))
	for _, d := range in.WorkingDays {
		wd, ok := utils.WeekdayFromISO(d)
		if !ok {
			return fmt.Errorf("invalid working day %d, expected 1 (Monday) to 7 (Sunday)", d)
		}
		days = append(days, wd)
	}
	p.StartTime, p.EndTime = start, end
	p.SetWorkingDays(days...)
	return nil
}

var errUnknownCategory = errors.New("unknown category")

func (pc *ProfessionalController) loadCategories(ids []uint) ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	if err := pc.DB.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, errUnknownCategory
	}
	return categories, nil
}

// respondCategoryError answers 400 for unknown categories and lets the
// domain mapping handle storage failures.
func (pc *ProfessionalController) respondCategoryError(c *gin.Context, err error) {
	if errors.Is(err, errUnknownCategory) {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	pc.respondDomainError(c, err)
}

// CreateProfessional creates the staff login and its bookable profile
// together.
func (pc *ProfessionalController) CreateProfessional(c *gin.Context) {
	salonID, err := tenant.FromContext(c.Request.Context()).Require()
	if err != nil {
		pc.respondDomainError(c, err)
		return
	}

	var input CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	profile := models.Professional{
		Bio:         input.Bio,
		Specialties: input.Specialties,
		IsActive:    true,
	}
	if err := input.ScheduleInput.apply(&profile); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := pc.loadCategories(input.CategoryIDs)
	if err != nil {
		pc.respondCategoryError(c, err)
		return
	}
	profile.Categories = categories

	tx := pc.DB.WithContext(c.Request.Context()).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	user := models.User{
		SalonID:   &salonID,
		Username:  strings.TrimSpace(input.Username),
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      models.RoleProfessional,
		IsActive:  true,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Username already registered")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	profile.UserID = user.ID
	if err := repository.New(tx, tenant.For(salonID)).Create(c.Request.Context(), &profile); err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create professional")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create professional")
		return
	}

	pc.Logger.Info("professional created",
		zap.String("salon_id", salonID.String()),
		zap.String("professional_id", profile.ID.String()))
	profile.User = user
	c.JSON(http.StatusCreated, profile)
}

// GetProfessionals lists active professionals, optionally only those able
// to perform ?serviceId.
func (pc *ProfessionalController) GetProfessionals(c *gin.Context) {
	ctx := c.Request.Context()
	q := pc.scoped(c).Query(ctx).
		Preload("User").
		Preload("Categories").
		Where("professionals.is_active = ?", true)

	if raw := c.Query("serviceId"); raw != "" {
		serviceID, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid serviceId format")
			return
		}
		service, err := repository.First[models.Service](ctx, pc.scoped(c), serviceID)
		if err != nil {
			pc.respondDomainError(c, err)
			return
		}
		q = q.Where("professionals.id IN (?)",
			pc.DB.Table("professional_categories").
				Select("professional_id").
				Where("service_category_id = ?", service.CategoryID))
	}

	var professionals []models.Professional
	if err := q.Find(&professionals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve professionals")
		return
	}
	c.JSON(http.StatusOK, professionals)
}

func (pc *ProfessionalController) UpdateProfessional(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input UpdateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	profile, err := repository.First[models.Professional](ctx, pc.scoped(c), id)
	if err != nil {
		pc.respondDomainError(c, err)
		return
	}

	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Specialties != nil {
		profile.Specialties = *input.Specialties
	}
	if input.IsActive != nil {
		profile.IsActive = *input.IsActive
	}
	if input.Schedule != nil {
		if err := input.Schedule.apply(profile); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	var categories []models.ServiceCategory
	if input.CategoryIDs != nil {
		if categories, err = pc.loadCategories(input.CategoryIDs); err != nil {
			pc.respondCategoryError(c, err)
			return
		}
	}

	err = pc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Categories").Save(profile).Error; err != nil {
			return err
		}
		if input.CategoryIDs == nil {
			return nil
		}
		return tx.Model(profile).Association("Categories").Replace(categories)
	})
	if err != nil {
		pc.respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
