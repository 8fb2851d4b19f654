package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/httpresp"
	"github.com/odnowakanapowa/booking-api/internal/mailer"
)

type ContactHandler struct {
	mail *mailer.Dispatcher
}

func NewContactHandler(mail *mailer.Dispatcher) *ContactHandler {
	return &ContactHandler{mail: mail}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

func (h *ContactHandler) Send(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Imię, e-mail i wiadomość są wymagane.")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		httperr.BadRequest(c, "invalid_request", "Wiadomość nie może być pusta.")
		return
	}

	h.mail.Dispatch(mailer.Event{
		Kind: mailer.KindContact,
		Contact: mailer.ContactEmail{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Phone:   strings.TrimSpace(req.Phone),
			Message: strings.TrimSpace(req.Message),
		},
	})

	httpresp.Message(c, "Wiadomość została wysłana")
}
