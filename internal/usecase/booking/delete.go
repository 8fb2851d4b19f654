package booking

import (
	"context"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/cache"
	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute hard-deletes an appointment and its junction rows.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.cache.Delete(ctx, cache.SlotsKey(ap.Date), cache.OccupiedKey())

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
