// controllers/base.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonhub-backend/metrics"
	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/scheduling"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is shared by every controller.
type Deps struct {
	DB      *gorm.DB
	Logger  *zap.Logger
	Tokens  utils.TokenIssuer
	Metrics *metrics.Booking
	// Now returns the current time in the salon timezone.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) scoped(c *gin.Context) *repository.Scoped {
	return repository.FromContext(c.Request.Context(), d.DB)
}

func (d Deps) booker(c *gin.Context) *scheduling.Booker {
	opts := []scheduling.Option{scheduling.WithClock(d.now)}
	if d.Metrics != nil {
		opts = append(opts, scheduling.WithRecorder(d.Metrics))
	}
	return scheduling.NewBooker(repository.NewAppointmentStore(d.scoped(c)), d.Logger, opts...)
}

func currentPrincipal(c *gin.Context) (utils.Principal, bool) {
	p, ok := utils.PrincipalFrom(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
	}
	return p, ok
}

func isStaff(p utils.Principal) bool {
	return p.Role == string(models.RoleAdmin) || p.Role == string(models.RoleProfessional)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

// respondDomainError maps scheduling and tenant errors to HTTP responses.
func (d Deps) respondDomainError(c *gin.Context, err error) {
	var ve *scheduling.ValidationError
	switch {
	case errors.As(err, &ve):
		status := http.StatusUnprocessableEntity
		if ve.Rule == scheduling.RuleSlotTaken {
			status = http.StatusConflict
		}
		c.AbortWithStatusJSON(status, gin.H{"error": ve.Message, "rule": ve.Rule})
	case errors.Is(err, scheduling.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, tenant.ErrNoTenant):
		utils.RespondWithError(c, http.StatusForbidden, "This action requires a salon account")
	default:
		d.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}
