package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/odnowakanapowa/booking-api/internal/config"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/mailer"
	"github.com/odnowakanapowa/booking-api/internal/models"
	"github.com/odnowakanapowa/booking-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	mail   *mailer.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, mail *mailer.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, mail: mail}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Brakuje wymaganych pól.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Domena adresu e-mail nie wygląda na prawidłową.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "user_exists", "Użytkownik już istnieje.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		httperr.Internal(c, "internal_error", "Błąd serwera.")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	}
	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Błąd tworzenia konta.")
		return
	}

	confirmation := models.EmailConfirmation{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := h.db.Create(&confirmation).Error; err != nil {
		httperr.Internal(c, "internal_error", "Błąd serwera.")
		return
	}

	confirmURL := strings.TrimRight(h.config.APIBaseURL, "/") +
		"/api/auth/confirm?token=" + url.QueryEscape(confirmation.Token)

	h.mail.Dispatch(mailer.Event{
		Kind:    mailer.KindAccountConfirm,
		Confirm: mailer.ConfirmEmail{To: email, ConfirmURL: confirmURL},
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Konto utworzone. Sprawdź e-mail, aby potwierdzić konto.",
	})
}

func (h *AuthHandler) Confirm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		httperr.BadRequest(c, "missing_token", "Brak tokenu.")
		return
	}

	var rec models.EmailConfirmation
	if err := h.db.Where("token = ?", token).First(&rec).Error; err != nil {
		httperr.NotFound(c, "token_not_found", "Token nie znaleziony.")
		return
	}

	if time.Now().After(rec.ExpiresAt) {
		httperr.BadRequest(c, "token_expired", "Token wygasł.")
		return
	}

	rec.Confirmed = true
	if err := h.db.Save(&rec).Error; err != nil {
		httperr.Internal(c, "internal_error", "Błąd serwera.")
		return
	}

	c.String(http.StatusOK, "E-mail potwierdzony. Możesz teraz się zalogować.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email i hasło są wymagane.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Nieprawidłowe dane logowania.")
			return
		}
		httperr.Internal(c, "internal_error", "Błąd serwera.")
		return
	}

	var rec models.EmailConfirmation
	confErr := h.db.Where("user_id = ?", user.ID).Order("id DESC").First(&rec).Error
	confirmed := confErr != nil || rec.Confirmed

	switch err := checkLogin(&user, req.Password, confirmed); httperr.BusinessCode(err) {
	case "":
	case "not_confirmed":
		httperr.Forbidden(c, "not_confirmed", "Konto nie zostało potwierdzone. Sprawdź e-mail.")
		return
	default:
		httperr.Unauthorized(c, "invalid_credentials", "Nieprawidłowe dane logowania.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "internal_error", "Błąd serwera.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Zalogowano pomyślnie",
		"token":   token,
		"user":    userPayload(&user),
	})
}

// checkLogin verifies the password before looking at the confirmation
// state, so the endpoint never reveals whether an account is
// unconfirmed to a caller who does not hold the password.
func checkLogin(user *models.User, password string, confirmed bool) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return httperr.ErrBusiness("invalid_credentials")
	}
	if !confirmed {
		return httperr.ErrBusiness("not_confirmed")
	}
	return nil
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func userPayload(user *models.User) gin.H {
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	return gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"phone":     user.Phone,
		"isAdmin":   user.IsAdmin,
		"role":      role,
	}
}
