package entity

import "gorm.io/gorm"

// Notification is an in-app message shown to the user; delivery by email
// happens alongside and is best-effort.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`
	Read    bool   `gorm:"not null;default:false" json:"read"`
}
