package entity

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	EventID string `gorm:"not null;type:uuid;uniqueIndex:idx_reviews_event_user" json:"event_id"`
	Event   Event  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_reviews_event_user" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `json:"comment"`
}
