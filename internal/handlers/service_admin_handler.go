package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/cache"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/middleware"
	"github.com/odnowakanapowa/booking-api/internal/models"
	"github.com/odnowakanapowa/booking-api/internal/storage"
)

const maxImageUploadBytes = 10 << 20

type ServiceAdminHandler struct {
	db     *gorm.DB
	cache  *cache.Cache
	images *storage.ImageStore
	audit  *audit.Dispatcher
}

func NewServiceAdminHandler(db *gorm.DB, c *cache.Cache, images *storage.ImageStore, auditDisp *audit.Dispatcher) *ServiceAdminHandler {
	return &ServiceAdminHandler{db: db, cache: c, images: images, audit: auditDisp}
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	MaxQuantity *int     `json:"maxQuantity"`
	Active      *bool    `json:"active"`
}

func (h *ServiceAdminHandler) loadService(c *gin.Context) (*models.Service, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Nieprawidłowy identyfikator usługi.")
		return nil, false
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Usługa nie znaleziona.")
		return nil, false
	}
	return &svc, true
}

func (h *ServiceAdminHandler) Update(c *gin.Context) {
	svc, ok := h.loadService(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nieprawidłowe dane.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Cena nie może być ujemna.")
			return
		}
		svc.Price = *req.Price
	}
	if req.MaxQuantity != nil {
		if *req.MaxQuantity < 0 {
			httperr.BadRequest(c, "invalid_quantity", "Limit nie może być ujemny.")
			return
		}
		svc.MaxQuantity = *req.MaxQuantity
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "Błąd zapisu usługi.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.ServicesKey)

	userID := c.GetUint(middleware.ContextUserID)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Usługa zaktualizowana",
		"service": svc,
	})
}

// UploadImage stores a photo for the service and saves its public URL.
func (h *ServiceAdminHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Internal(c, "storage_unavailable", "Przechowywanie plików nie jest skonfigurowane.")
		return
	}

	svc, ok := h.loadService(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Brak pliku obrazu.")
		return
	}
	defer file.Close()

	url, err := h.images.UploadServiceImage(
		c.Request.Context(),
		svc.ID,
		http.MaxBytesReader(c.Writer, file, maxImageUploadBytes),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Nie udało się przetworzyć obrazu.")
		return
	}

	svc.ImageURL = url
	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "Błąd zapisu usługi.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.ServicesKey)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Obraz został zapisany",
		"imageUrl": url,
	})
}
