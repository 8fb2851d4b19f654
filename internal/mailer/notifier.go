package mailer

import (
	"fmt"
	"strings"

	"github.com/odnowakanapowa/booking-api/internal/models"
)

// Line is one priced position of a booking e-mail.
type Line struct {
	Name      string
	UnitPrice float64
	Currency  string
	Quantity  int
}

func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

type BookingEmail struct {
	Ref           string
	CustomerName  string
	CustomerEmail string
	Date          string
	Time          string
	Description   string
	Lines         []Line
}

func (b BookingEmail) Total() float64 {
	var total float64
	for _, l := range b.Lines {
		total += l.Subtotal()
	}
	return total
}

// ItemizedBody renders the shared line-item block of booking e-mails.
func (b BookingEmail) ItemizedBody() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rezerwacja: %s\n", b.Ref)
	fmt.Fprintf(&sb, "Klient: %s\n", b.CustomerName)
	fmt.Fprintf(&sb, "Data: %s\nGodzina: %s\n\n", b.Date, b.Time)
	sb.WriteString("Wybrane usługi:\n")
	for _, l := range b.Lines {
		fmt.Fprintf(&sb, "  %dx %s — %.2f %s\n", l.Quantity, l.Name, l.Subtotal(), l.Currency)
	}
	fmt.Fprintf(&sb, "\nRazem: %.2f PLN\n", b.Total())
	if b.Description != "" {
		fmt.Fprintf(&sb, "\nDodatkowe informacje: %s\n", b.Description)
	}
	return sb.String()
}

type ContactEmail struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type ConfirmEmail struct {
	To         string
	ConfirmURL string
}

// Notifier is the outbound e-mail collaborator. Failures are logged
// by the dispatcher and never surface to API callers.
type Notifier interface {
	SendBookingPending(b BookingEmail) error
	SendBookingConfirmed(b BookingEmail) error
	SendContactMessage(m ContactEmail) error
	SendAccountConfirmation(m ConfirmEmail) error
}

// BookingLines maps junction rows (with preloaded services) to
// e-mail lines.
func BookingLines(items []models.AppointmentService) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			Name:      it.Service.Name,
			UnitPrice: it.Service.Price,
			Currency:  it.Service.Currency,
			Quantity:  it.Quantity,
		})
	}
	return lines
}
