package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/middleware"
	"github.com/odnowakanapowa/booking-api/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: auditDisp}
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *UserHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Użytkownik nie znaleziony.")
		return nil, false
	}
	return &user, true
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nieprawidłowe dane.")
		return
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Błąd zapisu profilu.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_profile_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profil zaktualizowany",
		"user":    userPayload(user),
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Obecne i nowe hasło są wymagane.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Obecne hasło jest nieprawidłowe.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		httperr.Internal(c, "internal_error", "Błąd serwera.")
		return
	}

	user.PasswordHash = string(hashed)
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Błąd zmiany hasła.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Hasło zostało zmienione"})
}

// DeleteProfile removes the account together with its appointments.
// Junction rows go first so the foreign keys never dangle.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Appointment{}).
			Where("user_id = ?", user.ID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("appointment_id IN ?", ids).
				Delete(&models.AppointmentService{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ids).
				Delete(&models.Appointment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).
			Delete(&models.EmailConfirmation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		httperr.Internal(c, "internal_error", "Błąd usuwania konta.")
		return
	}

	deletedID := user.ID
	h.audit.Dispatch(audit.Event{
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &deletedID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Konto zostało usunięte"})
}
