package booking

import (
	"context"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/cache"
	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/models"
	"github.com/odnowakanapowa/booking-api/internal/timezone"
)

type UpdateBookingInput struct {
	Date        string
	Time        string
	Description string
	Status      string // optional; empty keeps the current status

	// nil keeps the current services, non-nil replaces them wholesale
	Services []domain.Selection
}

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	in UpdateBookingInput,
) (*models.Appointment, error) {

	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_date_or_time")
	}
	start, err := domain.ParseSlot(in.Date, in.Time, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if start.Before(timezone.Now()) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !domain.Editable(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	// the appointment's own row never conflicts with itself
	taken, err := uc.repo.HasSlotConflict(ctx, in.Date, in.Time, ap.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("slot_taken")
	}

	oldDate := ap.Date

	ap.Date = in.Date
	ap.Time = in.Time
	ap.Description = in.Description
	if in.Status != "" {
		if !domain.IsValidStatus(in.Status) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		// edits follow the same status machine as the status endpoint
		if err := domain.CanTransition(domain.Status(ap.Status), domain.Status(in.Status)); err != nil {
			return nil, err
		}
		ap.Status = in.Status
	}

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if in.Services != nil {
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
		if err := uc.repo.ReplaceAppointmentServices(ctx, ap.ID, items); err != nil {
			return nil, err
		}
	}

	uc.cache.Delete(ctx,
		cache.SlotsKey(oldDate),
		cache.SlotsKey(ap.Date),
		cache.OccupiedKey(),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
