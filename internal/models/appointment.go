package models

import "time"

// Appointment owner is either a registered user (UserID set) or a
// guest captured by the guest_* columns. The two forms are mutually
// exclusive by application convention.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PublicRef string `gorm:"size:36;uniqueIndex" json:"public_ref"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	GuestName  string `gorm:"size:100" json:"guest_name"`
	GuestEmail string `gorm:"size:100" json:"guest_email"`
	GuestPhone string `gorm:"size:20" json:"guest_phone"`

	Date string `gorm:"size:10;not null;index:idx_appointments_slot" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;not null;index:idx_appointments_slot" json:"time"`  // HH:mm

	Status      string `gorm:"size:20;default:'pending'" json:"status"`
	Description string `gorm:"type:text" json:"description"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) IsGuest() bool {
	return a.UserID == nil
}

// CustomerName resolves the display name regardless of owner form.
func (a *Appointment) CustomerName() string {
	if a.UserID != nil && a.User != nil {
		return a.User.FirstName + " " + a.User.LastName
	}
	return a.GuestName
}

func (a *Appointment) CustomerEmail() string {
	if a.UserID != nil && a.User != nil {
		return a.User.Email
	}
	return a.GuestEmail
}
