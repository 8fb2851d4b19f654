package booking

import (
	"context"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/cache"
	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/mailer"
	"github.com/odnowakanapowa/booking-api/internal/models"
)

type ChangeStatus struct {
	repo  domain.Repository
	mail  *mailer.Dispatcher
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewChangeStatus(
	repo domain.Repository,
	mail *mailer.Dispatcher,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		mail:  mail,
		audit: audit,
		cache: cache,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	newStatus string,
) (*models.Appointment, error) {

	if !domain.IsValidStatus(newStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanTransition(domain.Status(ap.Status), domain.Status(newStatus)); err != nil {
		return nil, err
	}

	// restoring a cancelled booking re-occupies the slot; it must
	// still be free
	if ap.Status == string(domain.StatusCancelled) && newStatus == string(domain.StatusPending) {
		taken, err := uc.repo.HasSlotConflict(ctx, ap.Date, ap.Time, ap.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httperr.ErrBusiness("slot_taken")
		}
	}

	previous := ap.Status
	ap.Status = newStatus
	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Delete(ctx, cache.SlotsKey(ap.Date), cache.OccupiedKey())

	if newStatus == string(domain.StatusConfirmed) {
		uc.mail.Dispatch(mailer.Event{
			Kind: mailer.KindBookingConfirmed,
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
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": previous, "to": newStatus},
	})

	return ap, nil
}
