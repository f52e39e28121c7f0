// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceController struct {
	Deps
}

type CreateServiceInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	CategoryID  uint            `json:"categoryId" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Duration    int             `json:"durationMinutes" binding:"min=0"`
}

type UpdateServiceInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *uint            `json:"categoryId"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"durationMinutes"`
	IsActive    *bool            `json:"isActive"`
}

func (sc *ServiceController) categoryExists(id uint) (bool, error) {
	var n int64
	err := sc.DB.Model(&models.ServiceCategory{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Price.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
		return
	}
	ok, err := sc.categoryExists(input.CategoryID)
	if err != nil {
		sc.respondDomainError(c, err)
		return
	}
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown category")
		return
	}

	service := models.Service{
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price.Round(2),
		DurationMinutes: input.Duration,
		IsActive:        true,
	}
	if err := sc.scoped(c).Create(c.Request.Context(), &service); err != nil {
		sc.respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices lists the services of the current salon, ordered by name.
func (sc *ServiceController) GetServices(c *gin.Context) {
	var services []models.Service
	q := sc.scoped(c).Query(c.Request.Context()).Preload("Category").Order("name")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	service, err := repository.First[models.Service](c.Request.Context(), sc.scoped(c), id, "Category")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := repository.First[models.Service](c.Request.Context(), sc.scoped(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.CategoryID != nil {
		ok, err := sc.categoryExists(*input.CategoryID)
		if err != nil {
			sc.respondDomainError(c, err)
			return
		}
		if !ok {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown category")
			return
		}
		service.CategoryID = *input.CategoryID
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		service.Price = input.Price.Round(2)
	}
	if input.Duration != nil {
		service.DurationMinutes = *input.Duration
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := sc.DB.WithContext(c.Request.Context()).Omit("Category").Save(service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService deactivates the service so past appointments keep their
// reference.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result := sc.scoped(c).Model(c.Request.Context(), &models.Service{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
