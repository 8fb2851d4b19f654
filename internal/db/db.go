package db

import (
	"log"
	"time"

	"github.com/odnowakanapowa/booking-api/internal/config"
	"github.com/odnowakanapowa/booking-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// gormConfig keeps TranslateError on: without it the driver's
// duplicate-key error never becomes gorm.ErrDuplicatedKey and the
// uniq_active_slot loser would surface as an internal error instead
// of slot_taken.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	}
}

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gormConfig())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.EmailConfirmation{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// One non-cancelled booking per (date, time). Backs the
	// check-then-insert in the repository so concurrent requests for
	// the same slot cannot both commit.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_slot
        ON appointments (date, time)
        WHERE status <> 'cancelled'
    `)

	if err := Seed(db, cfg); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	return db
}
