package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/models"
)

var catalog = []models.Service{
	{ID: 1, Name: "Czyszczenie kanapy", Price: 200, Currency: "PLN", Active: true},
	{ID: 2, Name: "Czyszczenie fotela", Price: 80, Currency: "PLN", Active: true},
	{ID: 301, Name: "Ozonowanie", Price: 50, Currency: "PLN", Active: true, MaxQuantity: 1},
}

func guestInput(date, timeStr string, services ...domain.Selection) CreateBookingInput {
	return CreateBookingInput{
		GuestName:  "Anna Kowalska",
		GuestEmail: "anna@example.com",
		GuestPhone: "+48 600 100 200",
		Date:       date,
		Time:       timeStr,
		Services:   services,
	}
}

func TestCreateBookingGuestRoundTrip(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	ap, err := uc.Execute(context.Background(),
		guestInput(futureDate(7), "16:00", domain.Selection{ServiceID: 1, Quantity: 1}))
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.NotEmpty(t, ap.PublicRef)
	assert.Equal(t, "pending", ap.Status)
	assert.True(t, ap.IsGuest())
	assert.Equal(t, "Anna Kowalska", ap.CustomerName())

	stored, err := env.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	require.Len(t, stored.Services, 1)
	assert.Equal(t, uint(1), stored.Services[0].ServiceID)
	assert.Equal(t, 200.0, stored.Services[0].Service.Price)

	waitForMail(t, env.notifier, "pending")
}

func TestCreateBookingSecondWriterGetsSlotTaken(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	date := futureDate(7)
	_, err := uc.Execute(context.Background(), guestInput(date, "17:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), guestInput(date, "17:00"))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.Equal(t, 1, env.repo.count())
}

func TestCreateBookingCancelledSlotIsReusable(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	date := futureDate(7)
	first, err := uc.Execute(context.Background(), guestInput(date, "18:00"))
	require.NoError(t, err)

	first.Status = string(domain.StatusCancelled)
	require.NoError(t, env.repo.SaveAppointment(context.Background(), first))

	_, err = uc.Execute(context.Background(), guestInput(date, "18:00"))
	assert.NoError(t, err)
}

func TestCreateBookingGuestFieldsRequired(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	in := guestInput(futureDate(7), "16:00")
	in.GuestEmail = "   "

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "missing_guest_fields"))
	assert.Zero(t, env.repo.count())
}

func TestCreateBookingAuthenticatedSkipsGuestFields(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	userID := uint(42)
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: &userID,
		Date:   futureDate(7),
		Time:   "16:00",
	})
	assert.NoError(t, err)
}

func TestCreateBookingMissingDateOrTime(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	_, err := uc.Execute(context.Background(), guestInput("", "16:00"))
	assert.True(t, httperr.IsBusiness(err, "missing_date_or_time"))

	_, err = uc.Execute(context.Background(), guestInput(futureDate(7), ""))
	assert.True(t, httperr.IsBusiness(err, "missing_date_or_time"))
}

func TestCreateBookingRejectsMalformedSlot(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	_, err := uc.Execute(context.Background(), guestInput("07.09.2026", "16:00"))
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateBookingRejectsPastSlot(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	_, err := uc.Execute(context.Background(), guestInput(futureDate(-1), "16:00"))
	assert.True(t, httperr.IsBusiness(err, "slot_in_past"))
	assert.Zero(t, env.repo.count())
}

func TestCreateBookingUnknownServiceRejected(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	_, err := uc.Execute(context.Background(),
		guestInput(futureDate(7), "16:00", domain.Selection{ServiceID: 999, Quantity: 1}))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	assert.Zero(t, env.repo.count())
}

func TestCreateBookingMergesDuplicateServices(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	ap, err := uc.Execute(context.Background(), guestInput(futureDate(7), "16:00",
		domain.Selection{ServiceID: 2, Quantity: 1},
		domain.Selection{ServiceID: 2, Quantity: 2},
		domain.Selection{ServiceID: 301, Quantity: 4},
	))
	require.NoError(t, err)

	stored, err := env.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	require.Len(t, stored.Services, 2)
	assert.Equal(t, 3, stored.Services[0].Quantity) // id 2, summed
	assert.Equal(t, 1, stored.Services[1].Quantity) // id 301, capped
}

func TestCreateBookingSurvivesNotifierFailure(t *testing.T) {
	env := newTestEnvWithNotifier(newFakeNotifier(true), catalog...)
	uc := NewCreateBooking(env.repo, env.mail, env.audit, env.cache)

	ap, err := uc.Execute(context.Background(), guestInput(futureDate(7), "16:00"))
	require.NoError(t, err)
	assert.NotZero(t, ap.ID)

	// delivery was attempted and failed; the booking stands
	waitForMail(t, env.notifier, "pending")
	assert.Equal(t, 1, env.repo.count())
}
