package booking

import (
	"context"

	"github.com/odnowakanapowa/booking-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	ListServices(
		ctx context.Context,
		activeOnly bool,
	) ([]models.Service, error)

	GetServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Availability --------
	BookedTimes(
		ctx context.Context,
		date string,
	) ([]string, error)

	OccupiedDates(
		ctx context.Context,
		endDate string,
	) ([]string, error)

	HasSlotConflict(
		ctx context.Context,
		date string,
		timeStr string,
		excludeID uint,
	) (bool, error)

	// -------- Appointment (create / read) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		items []models.AppointmentService,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
	) ([]models.Appointment, error)

	// -------- Appointment (mutate) --------
	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ReplaceAppointmentServices(
		ctx context.Context,
		appointmentID uint,
		items []models.AppointmentService,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
