package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
)

func TestDeleteBookingRemovesRowAndJunction(t *testing.T) {
	env := newTestEnv(catalog...)
	createUC := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)
	deleteUC := NewDeleteBooking(env.repo, env.audit, env.cache)

	ap, err := createUC.Execute(context.Background(), guestInput(futureDate(7), "16:00",
		domain.Selection{ServiceID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, deleteUC.Execute(context.Background(), adminID, ap.ID))

	_, err = env.repo.GetAppointment(context.Background(), ap.ID)
	assert.Error(t, err)
	assert.Zero(t, env.repo.count())
}

func TestDeleteBookingFreesTheSlot(t *testing.T) {
	env := newTestEnv(catalog...)
	createUC := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)
	deleteUC := NewDeleteBooking(env.repo, env.audit, env.cache)

	date := futureDate(7)
	ap, err := createUC.Execute(context.Background(), guestInput(date, "16:00"))
	require.NoError(t, err)

	require.NoError(t, deleteUC.Execute(context.Background(), adminID, ap.ID))

	_, err = createUC.Execute(context.Background(), guestInput(date, "16:00"))
	assert.NoError(t, err)
}

func TestDeleteBookingUnknownID(t *testing.T) {
	env := newTestEnv(catalog...)
	deleteUC := NewDeleteBooking(env.repo, env.audit, env.cache)

	err := deleteUC.Execute(context.Background(), adminID, 9999)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
