package entity

import "gorm.io/gorm"

type Role string

const (
	RoleParticipant Role = "PARTICIPANT"
	RoleOrganizer   Role = "ORGANIZER"
)

type User struct {
	gorm.Model
	Email                  string `gorm:"not null;uniqueIndex" json:"email"`
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	City                   string `json:"city"`
	PhotoURL               string `json:"photo_url"`
	IsParticipationVisible bool   `gorm:"not null;default:true" json:"is_participation_visible"`
	Role                   Role   `gorm:"not null;default:'PARTICIPANT'" json:"role"`

	// Derived by the scoring engine; never written directly.
	XP              uint    `gorm:"not null;default:0" json:"xp"`
	League          string  `gorm:"not null;default:'🌱 Novato'" json:"league"`
	OrganizerRating float64 `gorm:"not null;default:0" json:"organizer_rating"`
}

func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

// FullName returns the name printed on certificates.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
