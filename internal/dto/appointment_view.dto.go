package dto

import (
	"time"

	"github.com/odnowakanapowa/booking-api/internal/models"
)

// ServiceLine is one position of an appointment as the frontend
// renders it.
type ServiceLine struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Quantity int     `json:"quantity"`
}

type AppointmentView struct {
	ID          uint          `json:"id"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Status      string        `json:"status"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	Services    []ServiceLine `json:"services"`
}

type OwnerView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type AdminAppointmentView struct {
	AppointmentView

	PublicRef  string     `json:"publicRef"`
	UserID     *uint      `json:"userId"`
	GuestName  string     `json:"guestName,omitempty"`
	GuestEmail string     `json:"guestEmail,omitempty"`
	GuestPhone string     `json:"guestPhone,omitempty"`
	User       *OwnerView `json:"user,omitempty"`
	IsGuest    bool       `json:"isGuest"`
}

func serviceLines(items []models.AppointmentService) []ServiceLine {
	lines := make([]ServiceLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, ServiceLine{
			ID:       it.ServiceID,
			Name:     it.Service.Name,
			Price:    it.Service.Price,
			Currency: it.Service.Currency,
			Quantity: it.Quantity,
		})
	}
	return lines
}

func NewAppointmentView(ap *models.Appointment) AppointmentView {
	return AppointmentView{
		ID:          ap.ID,
		Date:        ap.Date,
		Time:        ap.Time,
		Status:      ap.Status,
		Description: ap.Description,
		CreatedAt:   ap.CreatedAt,
		Services:    serviceLines(ap.Services),
	}
}

func NewAdminAppointmentView(ap *models.Appointment) AdminAppointmentView {
	view := AdminAppointmentView{
		AppointmentView: NewAppointmentView(ap),
		PublicRef:       ap.PublicRef,
		UserID:          ap.UserID,
		GuestName:       ap.GuestName,
		GuestEmail:      ap.GuestEmail,
		GuestPhone:      ap.GuestPhone,
		IsGuest:         ap.IsGuest(),
	}
	if ap.User != nil {
		view.User = &OwnerView{
			FirstName: ap.User.FirstName,
			LastName:  ap.User.LastName,
			Email:     ap.User.Email,
			Phone:     ap.User.Phone,
		}
	}
	return view
}
