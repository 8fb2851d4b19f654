package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odnowakanapowa/booking-api/internal/cache"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/models"
)

type CatalogHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCatalogHandler(db *gorm.DB, cache *cache.Cache) *CatalogHandler {
	return &CatalogHandler{db: db, cache: cache}
}

func (h *CatalogHandler) activeServices(c *gin.Context) ([]models.Service, bool) {
	var services []models.Service
	if h.cache.GetJSON(c.Request.Context(), cache.ServicesKey, &services) {
		return services, true
	}

	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "internal_error", "Błąd serwera.")
		return nil, false
	}

	h.cache.SetJSON(c.Request.Context(), cache.ServicesKey, services)
	return services, true
}

// List returns the raw array shape used by the public price list.
func (h *CatalogHandler) List(c *gin.Context) {
	services, ok := h.activeServices(c)
	if !ok {
		return
	}
	c.JSON(200, services)
}

// ListWrapped returns the {services: [...]} shape the booking page
// expects.
func (h *CatalogHandler) ListWrapped(c *gin.Context) {
	services, ok := h.activeServices(c)
	if !ok {
		return
	}
	c.JSON(200, gin.H{"services": services})
}
