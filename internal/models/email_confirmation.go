package models

import "time"

type EmailConfirmation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"user_id"`
	Token  string `gorm:"size:36;uniqueIndex;not null" json:"-"`

	ExpiresAt time.Time `json:"expires_at"`
	Confirmed bool      `gorm:"default:false" json:"confirmed"`

	CreatedAt time.Time `json:"created_at"`
}
