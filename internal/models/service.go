package models

import "time"

// Service is catalog reference data, seeded at startup and rarely
// mutated by the admin. MaxQuantity caps the bookable quantity per
// appointment; zero means unbounded.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Currency    string  `gorm:"size:3;default:'PLN'" json:"currency"`
	DurationMin int     `json:"duration_min"`
	Active      bool    `gorm:"default:true" json:"active"`
	MaxQuantity int     `gorm:"default:0" json:"max_quantity"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
