package entity

import "time"

// Certificate attests attendance of a finished event. ValidationCode is
// nil until issuance commits; once set it never changes.
type Certificate struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EventID string `gorm:"not null;type:uuid;uniqueIndex:idx_certificates_event_user" json:"event_id"`
	Event   Event  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_certificates_event_user" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	ValidationCode *string    `gorm:"uniqueIndex" json:"validation_code"`
	IssuedAt       *time.Time `json:"issued_at"`
	ArtifactPath   string     `json:"artifact_path"`
}

// Issued reports whether a validation code has been committed.
func (c *Certificate) Issued() bool {
	return c.ValidationCode != nil && *c.ValidationCode != ""
}

// Code returns the committed validation code, or an empty string.
func (c *Certificate) Code() string {
	if c.ValidationCode == nil {
		return ""
	}
	return *c.ValidationCode
}
