package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/cache"
	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/mailer"
	"github.com/odnowakanapowa/booking-api/internal/models"
	"github.com/odnowakanapowa/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	// owner: either UserID (authenticated) or all three guest fields
	UserID     *uint
	GuestName  string
	GuestEmail string
	GuestPhone string

	Date    string
	Time    string
	Comment string

	Services []domain.Selection
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	mail  *mailer.Dispatcher
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewCreateBooking(
	repo domain.Repository,
	mail *mailer.Dispatcher,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		mail:  mail,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_date_or_time")
	}

	if in.UserID == nil {
		if strings.TrimSpace(in.GuestName) == "" ||
			strings.TrimSpace(in.GuestEmail) == "" ||
			strings.TrimSpace(in.GuestPhone) == "" {
			return nil, httperr.ErrBusiness("missing_guest_fields")
		}
	}

	start, err := domain.ParseSlot(in.Date, in.Time, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if start.Before(timezone.Now()) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	ids := make([]uint, 0, len(in.Services))
	for _, sel := range in.Services {
		ids = append(ids, sel.ServiceID)
	}
	services, err := uc.repo.GetServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items, err := domain.MergeSelections(in.Services, services)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		PublicRef:   uuid.NewString(),
		UserID:      in.UserID,
		GuestName:   strings.TrimSpace(in.GuestName),
		GuestEmail:  strings.TrimSpace(in.GuestEmail),
		GuestPhone:  strings.TrimSpace(in.GuestPhone),
		Date:        in.Date,
		Time:        in.Time,
		Status:      string(domain.InitialStatus()),
		Description: in.Comment,
	}

	// repo re-checks the slot inside its transaction; first writer
	// wins, the loser gets slot_taken
	if err := uc.repo.CreateAppointment(ctx, ap, items); err != nil {
		return nil, err
	}

	uc.cache.Delete(ctx, cache.SlotsKey(ap.Date), cache.OccupiedKey())

	// hydrate line items for the notification
	full, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err == nil {
		ap = full
	}

	uc.mail.Dispatch(mailer.Event{
		Kind: mailer.KindBookingPending,
		Booking: mailer.BookingEmail{
			Ref:           ap.PublicRef,
			CustomerName:  ap.CustomerName(),
			CustomerEmail: ap.CustomerEmail(),
			Date:          ap.Date,
			Time:          ap.Time,
			Description:   ap.Description,
			Lines:         mailer.BookingLines(ap.Services),
		},
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
