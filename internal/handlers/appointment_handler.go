package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/httpresp"
	"github.com/odnowakanapowa/booking-api/internal/middleware"
	ucBooking "github.com/odnowakanapowa/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC    *ucBooking.CreateBooking
	availableUC *ucBooking.GetAvailableTimes
	occupiedUC  *ucBooking.GetOccupiedDates
	listMineUC  *ucBooking.ListUserBookings
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateBooking,
	availableUC *ucBooking.GetAvailableTimes,
	occupiedUC *ucBooking.GetOccupiedDates,
	listMineUC *ucBooking.ListUserBookings,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:    createUC,
		availableUC: availableUC,
		occupiedUC:  occupiedUC,
		listMineUC:  listMineUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date     string             `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string             `json:"time" binding:"required"` // HH:mm
	Comment  string             `json:"comment"`
	Services []domain.Selection `json:"services"`
}

type GuestAppointmentRequest struct {
	Date     string             `json:"date" binding:"required"`
	Time     string             `json:"time" binding:"required"`
	Comment  string             `json:"comment"`
	Services []domain.Selection `json:"services"`

	GuestName  string `json:"guestName" binding:"required"`
	GuestEmail string `json:"guestEmail" binding:"required,email"`
	GuestPhone string `json:"guestPhone" binding:"required"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "slot_taken":
		httperr.BadRequest(c, "slot_taken", "Ten termin jest już zajęty.")
	case "slot_in_past":
		httperr.BadRequest(c, "slot_in_past", "Nie można zarezerwować terminu w przeszłości.")
	case "missing_date_or_time":
		httperr.BadRequest(c, "missing_date_or_time", "Data i godzina są wymagane.")
	case "missing_guest_fields":
		httperr.BadRequest(c, "missing_guest_fields", "Wszystkie pola są wymagane.")
	case "invalid_date", "invalid_date_or_time":
		httperr.BadRequest(c, "invalid_date_or_time", "Data lub godzina jest nieprawidłowa.")
	case "service_not_found":
		httperr.BadRequest(c, "service_not_found", "Wybrana usługa nie istnieje.")
	case "invalid_status":
		httperr.BadRequest(c, "invalid_status", "Nieprawidłowy status.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "Wizyta nie pozwala na tę operację.")
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Nie znaleziono wizyty.")
	default:
		httperr.Internal(c, "internal_error", "Błąd serwera.")
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) AvailableTimes(c *gin.Context) {
	date := c.Param("date")

	times, err := h.availableUC.Execute(c.Request.Context(), date)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(200, gin.H{"availableTimes": times})
}

func (h *AppointmentHandler) OccupiedDates(c *gin.Context) {
	endDate := c.Query("endDate")

	dates, err := h.occupiedUC.Execute(c.Request.Context(), endDate)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(200, gin.H{"occupiedDates": dates})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data i godzina są wymagane.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:   &userID,
		Date:     req.Date,
		Time:     req.Time,
		Comment:  req.Comment,
		Services: req.Services,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"success":       true,
		"message":       "Wizyta została zarezerwowana",
		"appointmentId": ap.ID,
	})
}

func (h *AppointmentHandler) CreateGuest(c *gin.Context) {
	var req GuestAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Wszystkie pola są wymagane.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Date:       req.Date,
		Time:       req.Time,
		Comment:    req.Comment,
		Services:   req.Services,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"success":       true,
		"message":       "Wizyta została zarezerwowana",
		"appointmentId": ap.ID,
	})
}

// ======================================================
// USER HISTORY
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listMineUC.Execute(c.Request.Context(), userID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(200, gin.H{"appointments": views})
}
