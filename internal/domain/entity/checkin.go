package entity

import "time"

// CheckIn is one recorded attendance. Rows are append-only.
type CheckIn struct {
	ID             string       `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RegistrationID string       `gorm:"not null;type:uuid;index" json:"registration_id"`
	Registration   Registration `gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
}
