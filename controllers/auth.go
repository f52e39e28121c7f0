// controllers/auth.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthController struct {
	Deps
}

type RegisterInput struct {
	Username  string `json:"username" binding:"required,min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	SalonName string `json:"salonName"`
}

type ClientRegisterInput struct {
	SalonSlug string `json:"salonSlug" binding:"required"`
	Username  string `json:"username" binding:"required,min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // username or email
	Password   string `json:"password" binding:"required"`
}

type ProfileInput struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email" binding:"omitempty,email"`
	NationalID *string `json:"nationalId"`
	Phone      *string `json:"phone"`
}

func userJSON(u models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"phone":      u.Phone,
		"nationalId": u.NationalID,
		"role":       u.Role,
		"salonId":    u.SalonID,
	}
}

func (ac *AuthController) issue(c *gin.Context, status int, u models.User, extra gin.H) {
	token, err := ac.Tokens.Generate(utils.Principal{UserID: u.ID, SalonID: u.SalonID, Role: string(u.Role)})
	if err != nil {
		ac.Logger.Error("generate token", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetCookie("token", token, int(ac.Tokens.Expiry.Seconds()), "/", "", true, true)

	body := gin.H{"token": token, "user": userJSON(u)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func (ac *AuthController) usernameOrEmailTaken(username, email string) (bool, error) {
	var existing models.User
	err := ac.DB.Where("username = ? OR (email <> '' AND email = ?)", username, email).First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// salonSlug derives a free slug from the salon name, falling back to the
// owner's username.
func (ac *AuthController) salonSlug(tx *gorm.DB, name, username string) (string, error) {
	candidates := []string{utils.Slugify(name), utils.Slugify(name + " " + username), utils.Slugify(username)}
	for _, candidate := range candidates {
		slug, err := utils.NormalizeSlug(candidate)
		if err != nil {
			continue
		}
		var n int64
		if err := tx.Model(&models.Salon{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return slug, nil
		}
	}
	return "", errors.New("salon name already in use")
}

// Register creates a salon together with its first admin.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	input.Username = strings.TrimSpace(input.Username)

	taken, err := ac.usernameOrEmailTaken(input.Username, input.Email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		utils.RespondWithError(c, http.StatusConflict, "Username or email already registered")
		return
	}

	salonName := strings.TrimSpace(input.SalonName)
	if salonName == "" {
		salonName = fmt.Sprintf("Salon of %s", input.FirstName)
	}

	tx := ac.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	slug, err := ac.salonSlug(tx, salonName, input.Username)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, err.Error())
		return
	}

	salon := models.NewSalon(salonName, slug)
	salon.Email = input.Email
	salon.Phone = input.Phone
	if err := tx.Create(&salon).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Salon name already in use")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create salon")
		return
	}

	admin := models.User{
		SalonID:   &salon.ID,
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password, // Will be hashed in BeforeCreate hook
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete registration")
		return
	}

	ac.Logger.Info("salon registered", zap.String("salon_id", salon.ID.String()), zap.String("slug", salon.Slug))
	ac.issue(c, http.StatusCreated, admin, gin.H{
		"message": "Registration successful",
		"salon":   gin.H{"id": salon.ID, "name": salon.Name, "slug": salon.Slug},
	})
}

// RegisterClient signs a client up at an existing salon.
func (ac *AuthController) RegisterClient(c *gin.Context) {
	var input ClientRegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slug, err := utils.NormalizeSlug(input.SalonSlug)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var salon models.Salon
	if err := ac.DB.Where("slug = ? AND is_active = ?", slug, true).First(&salon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	taken, err := ac.usernameOrEmailTaken(strings.TrimSpace(input.Username), input.Email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		utils.RespondWithError(c, http.StatusConflict, "Username or email already registered")
		return
	}

	client := models.User{
		SalonID:   &salon.ID,
		Username:  strings.TrimSpace(input.Username),
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      models.RoleClient,
		IsActive:  true,
	}
	if err := ac.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	ac.issue(c, http.StatusCreated, client, gin.H{"message": "Registration successful"})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := ac.DB.Where("username = ? OR email = ?", identifier, identifier).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) || !user.IsActive {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	ac.recordLogin(c.Request.Context(), &user)
	ac.issue(c, http.StatusOK, user, nil)
}

// recordLogin stamps last_login. A failure is logged and does not block the
// sign-in.
func (ac *AuthController) recordLogin(ctx context.Context, user *models.User) {
	now := ac.now()
	if err := ac.DB.WithContext(ctx).Model(user).Update("last_login", &now).Error; err != nil {
		ac.Logger.Warn("failed to record last login",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}

func (ac *AuthController) loadCurrentUser(c *gin.Context) (*models.User, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := ac.DB.Preload("Salon").First(&user, "id = ?", p.UserID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return nil, false
	}
	return &user, true
}

func (ac *AuthController) Me(c *gin.Context) {
	user, ok := ac.loadCurrentUser(c)
	if !ok {
		return
	}

	body := gin.H{"user": userJSON(*user)}
	if user.Salon != nil {
		body["salon"] = user.Salon
	}
	c.JSON(http.StatusOK, body)
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user, ok := ac.loadCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userJSON(*user))
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user, ok := ac.loadCurrentUser(c)
	if !ok {
		return
	}

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		updates["email"] = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
		updates["phone"] = utils.CleanPhone(*input.Phone)
	}
	if input.NationalID != nil {
		// An empty national ID clears it; NULLs do not collide in the unique index.
		if id := strings.TrimSpace(*input.NationalID); id == "" {
			updates["national_id"] = nil
		} else {
			updates["national_id"] = id
		}
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.RespondWithError(c, http.StatusConflict, "National ID already registered")
				return
			}
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	if err := ac.DB.First(user, "id = ?", user.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, userJSON(*user))
}
