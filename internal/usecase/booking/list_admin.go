package booking

import (
	"context"

	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/dto"
)

type ListAllBookings struct {
	repo domain.Repository
}

func NewListAllBookings(repo domain.Repository) *ListAllBookings {
	return &ListAllBookings{repo: repo}
}

func (uc *ListAllBookings) Execute(
	ctx context.Context,
) ([]dto.AdminAppointmentView, error) {

	appointments, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminAppointmentView, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.NewAdminAppointmentView(&appointments[i]))
	}
	return out, nil
}
