package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/httpresp"
	"github.com/odnowakanapowa/booking-api/internal/middleware"
	ucBooking "github.com/odnowakanapowa/booking-api/internal/usecase/booking"
)

type AdminAppointmentHandler struct {
	listUC   *ucBooking.ListAllBookings
	statusUC *ucBooking.ChangeStatus
	updateUC *ucBooking.UpdateBooking
	deleteUC *ucBooking.DeleteBooking
}

func NewAdminAppointmentHandler(
	listUC *ucBooking.ListAllBookings,
	statusUC *ucBooking.ChangeStatus,
	updateUC *ucBooking.UpdateBooking,
	deleteUC *ucBooking.DeleteBooking,
) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		listUC:   listUC,
		statusUC: statusUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Date        string             `json:"date" binding:"required"`
	Time        string             `json:"time" binding:"required"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Services    []domain.Selection `json:"services"`
}

// --------- Handlers ---------

func (h *AdminAppointmentHandler) Check(c *gin.Context) {
	httpresp.Message(c, "Uprawnienia administratora potwierdzone")
}

func (h *AdminAppointmentHandler) List(c *gin.Context) {
	views, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		mapBookingError(c, err)
		return
	}
	httpresp.OK(c, views)
}

func (h *AdminAppointmentHandler) UpdateStatus(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Nieprawidłowy identyfikator wizyty.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nieprawidłowy status.")
		return
	}

	if _, err := h.statusUC.Execute(c.Request.Context(), adminID, uint(id), req.Status); err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Message(c, "Status wizyty został zaktualizowany")
}

func (h *AdminAppointmentHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Nieprawidłowy identyfikator wizyty.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data i godzina są wymagane.")
		return
	}

	_, err = h.updateUC.Execute(c.Request.Context(), adminID, uint(id), ucBooking.UpdateBookingInput{
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Status:      req.Status,
		Services:    req.Services,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Message(c, "Wizyta została zaktualizowana")
}

func (h *AdminAppointmentHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Nieprawidłowy identyfikator wizyty.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), adminID, uint(id)); err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Message(c, "Wizyta została usunięta")
}
