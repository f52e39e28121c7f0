package controllers

import (
	"context"
	"net/http"
	"testing"

	"salonhub-backend/models"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// unreachableDB points at a closed port, so every statement fails with a
// connection error.
func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=test dbname=test sslmode=disable connect_timeout=1"), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

func salonRouter(p utils.Principal, method, path string, handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		utils.SetPrincipal(c, p)
	}, tenant.Middleware())
	r.Handle(method, path, handler)
	return r
}

func TestStorageFailuresAreServerErrors(t *testing.T) {
	t.Parallel()

	salonID := uuid.New()
	admin := utils.Principal{UserID: uuid.New(), SalonID: &salonID, Role: string(models.RoleAdmin)}
	deps := Deps{DB: unreachableDB(t), Logger: zaptest.NewLogger(t)}

	services := &ServiceController{Deps: deps}
	professionals := &ProfessionalController{Deps: deps}

	serviceBody := gin.H{"name": "Cut", "categoryId": 1, "price": "40", "durationMinutes": 30}
	professionalBody := gin.H{
		"username":    "carla",
		"email":       "carla@example.com",
		"password":    "secret123",
		"firstName":   "Carla",
		"categoryIds": []uint{1},
		"startTime":   "09:00",
		"endTime":     "18:00",
		"workingDays": []int{1, 2, 3},
	}

	tests := []struct {
		name    string
		path    string
		handler gin.HandlerFunc
		body    gin.H
	}{
		{"create service", "/services", services.CreateService, serviceBody},
		{"create professional", "/professionals", professionals.CreateProfessional, professionalBody},
	}
	for _, tt := range tests {
		r := salonRouter(admin, http.MethodPost, tt.path, tt.handler)
		w := sendJSON(r, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, tt.name)
	}
}

func TestUpdateMaterialRejectsNegativeValues(t *testing.T) {
	t.Parallel()

	salonID := uuid.New()
	admin := utils.Principal{UserID: uuid.New(), SalonID: &salonID, Role: string(models.RoleAdmin)}
	materials := &MaterialController{Deps: Deps{DB: unreachableDB(t), Logger: zaptest.NewLogger(t)}}
	r := salonRouter(admin, http.MethodPut, "/materials/:id", materials.UpdateMaterial)

	for _, body := range []gin.H{
		{"unitCost": "-0.01"},
		{"minimumStock": "-2"},
		{"name": "Shampoo", "unitCost": "3.50", "minimumStock": "-1"},
	} {
		w := sendJSON(r, http.MethodPut, "/materials/"+uuid.NewString(), body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
		assert.Contains(t, w.Body.String(), "cannot be negative")
	}
}

func TestRecordLoginLogsFailure(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	ac := &AuthController{Deps: Deps{DB: unreachableDB(t), Logger: zap.New(core)}}
	user := &models.User{ID: uuid.New()}

	ac.recordLogin(context.Background(), user)

	entries := logs.FilterMessage("failed to record last login").All()
	require.Len(t, entries, 1)
	assert.Equal(t, user.ID.String(), entries[0].ContextMap()["user_id"])
}
