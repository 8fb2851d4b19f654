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

const adminID = uint(1)

func seedAppointment(t *testing.T, env *testEnv, date, timeStr, status string) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		PublicRef:  "ref-" + date + "-" + timeStr,
		GuestName:  "Jan Nowak",
		GuestEmail: "jan@example.com",
		GuestPhone: "+48 600 000 001",
		Date:       date,
		Time:       timeStr,
		Status:     string(domain.StatusPending),
	}
	require.NoError(t, env.repo.CreateAppointment(context.Background(), ap, nil))
	if status != string(domain.StatusPending) {
		ap.Status = status
		require.NoError(t, env.repo.SaveAppointment(context.Background(), ap))
	}
	return ap
}

func TestChangeStatusPendingToConfirmedSendsEmail(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewChangeStatus(env.repo, env.mail, env.audit, env.cache)

	ap := seedAppointment(t, env, futureDate(7), "16:00", "pending")

	updated, err := uc.Execute(context.Background(), adminID, ap.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	waitForMail(t, env.notifier, "confirmed")
}

func TestChangeStatusInvalidStatus(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewChangeStatus(env.repo, env.mail, env.audit, env.cache)

	ap := seedAppointment(t, env, futureDate(7), "16:00", "pending")

	_, err := uc.Execute(context.Background(), adminID, ap.ID, "done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestChangeStatusUnknownAppointment(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewChangeStatus(env.repo, env.mail, env.audit, env.cache)

	_, err := uc.Execute(context.Background(), adminID, 12345, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestChangeStatusDisallowedTransition(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewChangeStatus(env.repo, env.mail, env.audit, env.cache)

	ap := seedAppointment(t, env, futureDate(7), "16:00", "completed")

	_, err := uc.Execute(context.Background(), adminID, ap.ID, "pending")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestChangeStatusRestoreRequiresFreeSlot(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewChangeStatus(env.repo, env.mail, env.audit, env.cache)

	date := futureDate(7)
	cancelled := seedAppointment(t, env, date, "17:00", "cancelled")

	// someone else took the slot in the meantime
	seedAppointment(t, env, date, "17:00", "pending")

	_, err := uc.Execute(context.Background(), adminID, cancelled.ID, "pending")
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	stored, err := env.repo.GetAppointment(context.Background(), cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.Status)
}

func TestChangeStatusRestoreSucceedsWhenSlotFree(t *testing.T) {
	env := newTestEnv(catalog...)
	uc := NewChangeStatus(env.repo, env.mail, env.audit, env.cache)

	cancelled := seedAppointment(t, env, futureDate(7), "18:00", "cancelled")

	updated, err := uc.Execute(context.Background(), adminID, cancelled.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, "pending", updated.Status)
}
