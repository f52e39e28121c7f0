// controllers/client.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClientController lets staff look up the salon's clients.
type ClientController struct {
	Deps
}

type UpdateClientInput struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// GetClients lists clients of the salon. ?q matches name, username, email
// or phone.
func (cc *ClientController) GetClients(c *gin.Context) {
	q := cc.scoped(c).Query(c.Request.Context()).
		Where("role = ?", models.RoleClient).
		Order("first_name, last_name")

	if term := strings.TrimSpace(c.Query("q")); term != "" {
		like := "%" + term + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR username ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like, like)
	}

	var clients []models.User
	if err := q.Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	out := make([]gin.H, 0, len(clients))
	for _, u := range clients {
		out = append(out, userJSON(u))
	}
	c.JSON(http.StatusOK, out)
}

// GetClient returns a client with their appointment history.
func (cc *ClientController) GetClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	scoped := cc.scoped(c)

	client, err := repository.First[models.User](ctx, scoped, id)
	if err != nil || client.Role != models.RoleClient {
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var history []models.Appointment
	if err := scoped.Query(ctx).
		Preload("Service").
		Preload("Professional.User").
		Where("client_id = ?", client.ID).
		Order("slot_date DESC, slot_time DESC").
		Find(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": userJSON(*client), "appointments": history})
}

// UpdateClient activates or deactivates a client account.
func (cc *ClientController) UpdateClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	res := cc.scoped(c).Model(c.Request.Context(), &models.User{}).
		Where("id = ? AND role = ?", id, models.RoleClient).
		Update("is_active", *input.IsActive)
	if res.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client updated successfully"})
}
