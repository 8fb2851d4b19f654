package models

import "time"

// AppointmentService is the appointment↔service junction. One row per
// service per appointment; re-adding a service raises the quantity
// instead of duplicating the row.
type AppointmentService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"not null;uniqueIndex:idx_appointment_service" json:"appointment_id"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_appointment_service" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Quantity int `gorm:"default:1" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
}
