package booking

import (
	"context"

	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/dto"
)

type ListUserBookings struct {
	repo domain.Repository
}

func NewListUserBookings(repo domain.Repository) *ListUserBookings {
	return &ListUserBookings{repo: repo}
}

func (uc *ListUserBookings) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentView, error) {

	appointments, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentView, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.NewAppointmentView(&appointments[i]))
	}
	return out, nil
}
