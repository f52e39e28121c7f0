// controllers/catalog.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/models"
	"salonhub-backend/settings"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
)

const featuredServices = 6

type CatalogController struct {
	Deps
	Settings *settings.Store
}

type SettingsInput struct {
	SiteName string `json:"siteName" binding:"required"`
	Tagline  string `json:"tagline"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
	Address  string `json:"address"`
}

type CatalogSection struct {
	Category models.ServiceCategory `json:"category"`
	Services []models.Service       `json:"services"`
}

func (cc *CatalogController) GetCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := cc.DB.Order("id").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCatalog lists the bookable services of the caller's salon grouped by
// category, leaving out categories the salon switched off.
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	salonID, err := tenant.FromContext(c.Request.Context()).Require()
	if err != nil {
		cc.respondDomainError(c, err)
		return
	}

	var salon models.Salon
	if err := cc.DB.First(&salon, "id = ?", salonID).Error; err != nil {
		cc.respondDomainError(c, err)
		return
	}

	var services []models.Service
	q := cc.scoped(c).Query(c.Request.Context()).
		Preload("Category").
		Where("is_active = ?", true).
		Order("name")
	if err := q.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"salon": salon.Name, "sections": groupByCategory(salon, services)})
}

func groupByCategory(salon models.Salon, services []models.Service) []CatalogSection {
	index := map[uint]int{}
	var sections []CatalogSection
	for _, s := range services {
		if !salon.CategoryEnabled(s.Category.Kind) {
			continue
		}
		i, ok := index[s.CategoryID]
		if !ok {
			i = len(sections)
			index[s.CategoryID] = i
			sections = append(sections, CatalogSection{Category: s.Category})
		}
		sections[i].Services = append(sections[i].Services, s)
	}
	return sections
}

// GetHome serves the public landing page data. It runs without a tenant.
func (cc *CatalogController) GetHome(c *gin.Context) {
	site, _, err := cc.Settings.Get(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	var featured []models.Service
	if err := cc.scoped(c).Query(c.Request.Context()).
		Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(featuredServices).
		Find(&featured).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": site, "featuredServices": featured})
}

func (cc *CatalogController) CreateSettings(c *gin.Context) {
	var input SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	site, err := cc.Settings.Create(c.Request.Context(), models.SiteSettings{
		SiteName: input.SiteName,
		Tagline:  input.Tagline,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
	})
	if errors.Is(err, settings.ErrAlreadyConfigured) {
		utils.RespondWithError(c, http.StatusConflict, "Site settings already exist, update them instead")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	c.JSON(http.StatusCreated, site)
}

func (cc *CatalogController) UpdateSettings(c *gin.Context) {
	var input SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	site, err := cc.Settings.Update(c.Request.Context(), models.SiteSettings{
		SiteName: input.SiteName,
		Tagline:  input.Tagline,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
	})
	if err != nil {
		cc.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}
