// controllers/salon.go
package controllers

import (
	"net/http"

	"salonhub-backend/models"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// SalonController manages the caller's own salon record.
type SalonController struct {
	Deps
}

type UpdateSalonInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`

	HairEnabled  *bool `json:"hairEnabled"`
	SkinEnabled  *bool `json:"skinEnabled"`
	NailsEnabled *bool `json:"nailsEnabled"`

	WhatsAppNotifications *bool `json:"whatsAppNotifications"`
	SMSNotifications      *bool `json:"smsNotifications"`
}

func (sc *SalonController) load(c *gin.Context) (*models.Salon, bool) {
	salonID, err := tenant.FromContext(c.Request.Context()).Require()
	if err != nil {
		sc.respondDomainError(c, err)
		return nil, false
	}
	var salon models.Salon
	if err := sc.DB.First(&salon, "id = ?", salonID).Error; err != nil {
		sc.respondDomainError(c, err)
		return nil, false
	}
	return &salon, true
}

func (sc *SalonController) GetSalon(c *gin.Context) {
	salon, ok := sc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, salon)
}

func (sc *SalonController) UpdateSalon(c *gin.Context) {
	salon, ok := sc.load(c)
	if !ok {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	set := func(column string, v interface{}, present bool) {
		if present {
			updates[column] = v
		}
	}
	if input.Name != nil {
		set("name", *input.Name, *input.Name != "")
	}
	if input.Phone != nil {
		set("phone", *input.Phone, true)
	}
	if input.Email != nil {
		set("email", *input.Email, true)
	}
	if input.Address != nil {
		set("address", *input.Address, true)
	}
	for column, flag := range map[string]*bool{
		"hair_enabled":            input.HairEnabled,
		"skin_enabled":            input.SkinEnabled,
		"nails_enabled":           input.NailsEnabled,
		"whats_app_notifications": input.WhatsAppNotifications,
		"sms_notifications":       input.SMSNotifications,
	} {
		if flag != nil {
			updates[column] = *flag
		}
	}

	if len(updates) > 0 {
		if err := sc.DB.Model(salon).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
			return
		}
	}
	if err := sc.DB.First(salon, "id = ?", salon.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, salon)
}
