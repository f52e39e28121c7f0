// controllers/material.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialController struct {
	Deps
}

type CreateMaterialInput struct {
	Name         string                  `json:"name" binding:"required"`
	Category     models.MaterialCategory `json:"category" binding:"required,oneof=hair skin nails general"`
	Description  string                  `json:"description"`
	Quantity     decimal.Decimal         `json:"quantity"`
	Unit         string                  `json:"unit" binding:"required"`
	UnitCost     decimal.Decimal         `json:"unitCost"`
	MinimumStock decimal.Decimal         `json:"minimumStock"`
}

type UpdateMaterialInput struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Unit         *string          `json:"unit"`
	UnitCost     *decimal.Decimal `json:"unitCost"`
	MinimumStock *decimal.Decimal `json:"minimumStock"`
}

var errNegativeQuantity = errors.New("quantities cannot be negative")

func (in UpdateMaterialInput) validate() error {
	if (in.UnitCost != nil && in.UnitCost.IsNegative()) || (in.MinimumStock != nil && in.MinimumStock.IsNegative()) {
		return errNegativeQuantity
	}
	return nil
}

type MovementInput struct {
	Type     models.MovementType `json:"type" binding:"required,oneof=in out adjust"`
	Quantity decimal.Decimal     `json:"quantity"`
	Reason   string              `json:"reason"`
}

func (mc *MaterialController) GetMaterials(c *gin.Context) {
	q := mc.scoped(c).Query(c.Request.Context()).Order("name")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if c.Query("lowStock") == "true" {
		q = q.Where("quantity <= minimum_stock")
	}

	var materials []models.Material
	if err := q.Find(&materials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve materials")
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (mc *MaterialController) CreateMaterial(c *gin.Context) {
	var input CreateMaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Quantity.IsNegative() || input.UnitCost.IsNegative() || input.MinimumStock.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, errNegativeQuantity.Error())
		return
	}

	material := models.Material{
		Name:         input.Name,
		Category:     input.Category,
		Description:  input.Description,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		UnitCost:     input.UnitCost,
		MinimumStock: input.MinimumStock,
	}
	if err := mc.scoped(c).Create(c.Request.Context(), &material); err != nil {
		mc.respondDomainError(c, err)
		return
	}
	material.LowStock = material.IsLowStock()
	c.JSON(http.StatusCreated, material)
}

func (mc *MaterialController) UpdateMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateMaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := input.validate(); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	material, err := repository.First[models.Material](c.Request.Context(), mc.scoped(c), id)
	if err != nil {
		mc.respondDomainError(c, err)
		return
	}

	if input.Name != nil {
		material.Name = *input.Name
	}
	if input.Description != nil {
		material.Description = *input.Description
	}
	if input.Unit != nil {
		material.Unit = *input.Unit
	}
	if input.UnitCost != nil {
		material.UnitCost = *input.UnitCost
	}
	if input.MinimumStock != nil {
		material.MinimumStock = *input.MinimumStock
	}

	if err := mc.DB.WithContext(c.Request.Context()).Save(material).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update material")
		return
	}
	material.LowStock = material.IsLowStock()
	c.JSON(http.StatusOK, material)
}

// AddMovement applies a stock movement under a row lock and records it.
func (mc *MaterialController) AddMovement(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input MovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	scoped := mc.scoped(c)
	var material models.Material
	err := mc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		txScoped := scoped.Tx(tx)
		if err := txScoped.Query(c.Request.Context()).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&material, "id = ?", id).Error; err != nil {
			return err
		}

		next, err := material.Apply(input.Type, input.Quantity)
		if err != nil {
			return err
		}
		if err := tx.Model(&material).Update("quantity", next).Error; err != nil {
			return err
		}
		material.Quantity = next

		userID := p.UserID
		movement := models.StockMovement{
			MaterialID: material.ID,
			Type:       input.Type,
			Quantity:   input.Quantity,
			Reason:     input.Reason,
			UserID:     &userID,
		}
		return txScoped.Create(c.Request.Context(), &movement)
	})
	switch {
	case errors.Is(err, models.ErrInsufficientStock), errors.Is(err, models.ErrInvalidMovement):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		mc.respondDomainError(c, err)
		return
	}

	material.LowStock = material.IsLowStock()
	if material.LowStock {
		mc.Logger.Warn("material low on stock",
			zap.String("material_id", material.ID.String()),
			zap.String("quantity", material.Quantity.String()))
	}
	c.JSON(http.StatusOK, material)
}

func (mc *MaterialController) GetMovements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var movements []models.StockMovement
	if err := mc.scoped(c).Query(c.Request.Context()).
		Where("material_id = ?", id).
		Order("created_at DESC").
		Find(&movements).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve movements")
		return
	}
	c.JSON(http.StatusOK, movements)
}
