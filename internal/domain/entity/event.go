package entity

import (
	"time"

	"github.com/lib/pq"
)

type EventStatus string

const (
	EventStatusDraft      EventStatus = "DRAFT"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusInProgress EventStatus = "IN_PROGRESS"
	EventStatusFinished   EventStatus = "FINISHED"
	EventStatusCanceled   EventStatus = "CANCELED"
)

type EventType string

const (
	EventTypeFree EventType = "FREE"
	EventTypePaid EventType = "PAID"
)

type Event struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	OrganizerID uint      `gorm:"not null;index" json:"organizer_id"`
	Organizer   User      `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"-"`

	Title           string     `gorm:"not null" json:"title"`
	Description     string     `json:"description"`
	LocationAddress string     `json:"location_address"`
	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	EndDate         *time.Time `json:"end_date"`

	MaxEnrollments   *int      `json:"max_enrollments"` // nil = unlimited
	RequiresApproval bool      `gorm:"not null;default:false" json:"requires_approval"`
	EventType        EventType `gorm:"not null;default:'FREE'" json:"event_type"`
	Price            float64   `json:"price"`
	WorkloadHours    int       `json:"workload_hours"`
	AllowedCheckins  int       `gorm:"not null;default:1" json:"allowed_checkins"`

	Status             EventStatus    `gorm:"not null;default:'DRAFT'" json:"status"`
	IsInscriptionsOpen bool           `gorm:"not null;default:false" json:"is_inscriptions_open"`
	Tags               pq.StringArray `gorm:"type:text[]" json:"tags"`
}

// AcceptsRegistrations reports whether a new registration may be admitted.
// Both conditions are required: the event must be published and the
// organizer must not have closed inscriptions.
func (e *Event) AcceptsRegistrations() bool {
	return e.Status == EventStatusPublished && e.IsInscriptionsOpen
}

// IsTerminal reports whether the status can never change again.
func (e *Event) IsTerminal() bool {
	return e.Status == EventStatusFinished || e.Status == EventStatusCanceled
}

// InitialRegistrationStatus decides the status a new registration is
// admitted with: paid events wait for payment, approval-gated events wait
// for the organizer, everything else is approved immediately.
func (e *Event) InitialRegistrationStatus() RegistrationStatus {
	switch {
	case e.EventType == EventTypePaid:
		return RegistrationStatusAwaitingPayment
	case e.RequiresApproval:
		return RegistrationStatusPending
	default:
		return RegistrationStatusApproved
	}
}
