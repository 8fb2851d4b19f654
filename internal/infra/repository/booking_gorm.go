package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Model(&models.Service{})
	if activeOnly {
		q = q.Where("active = true")
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) BookedTimes(
	ctx context.Context,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("date = ? AND status <> ?", date, string(domain.StatusCancelled)).
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *BookingGormRepository) OccupiedDates(
	ctx context.Context,
	endDate string,
) ([]string, error) {

	var dates []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Distinct("date").
		Where("date <= ? AND status <> ?", endDate, string(domain.StatusCancelled)).
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *BookingGormRepository) HasSlotConflict(
	ctx context.Context,
	date string,
	timeStr string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("date = ? AND time = ? AND status <> ?", date, timeStr, string(domain.StatusCancelled))

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment (create / read)
// --------------------------------------------------

// lockSlot selects the rows of non-cancelled bookings holding the
// slot, FOR UPDATE. Postgres refuses locking clauses on aggregates,
// so this must stay a plain row select, never a locked Count.
func lockSlot(tx *gorm.DB, date, timeStr string) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"date = ? AND time = ? AND status <> ?",
			date, timeStr, string(domain.StatusCancelled),
		)
}

// CreateAppointment runs the availability check and the insert in one
// transaction, locking conflicting rows. The partial unique index on
// (date, time) is the backstop for writers that race past the check;
// both paths surface as the slot_taken business error.
func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	items []models.AppointmentService,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var held []uint
		if err := lockSlot(tx, ap.Date, ap.Time).Pluck("id", &held).Error; err != nil {
			return err
		}
		if len(held) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].AppointmentID = ap.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		ap.Services = items
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Services.Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListByUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Services.Service").
		Order("date DESC, time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Appointment (mutate)
// --------------------------------------------------

func (r *BookingGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services", "User").
		Save(ap).Error
}

// ReplaceAppointmentServices is a destructive replace: the previous
// junction rows are deleted and the new set inserted.
func (r *BookingGormRepository) ReplaceAppointmentServices(
	ctx context.Context,
	appointmentID uint,
	items []models.AppointmentService,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", appointmentID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].AppointmentID = appointmentID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Appointment{}, id).Error
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
