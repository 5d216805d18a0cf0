package entity

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending         RegistrationStatus = "PENDING"
	RegistrationStatusAwaitingPayment RegistrationStatus = "AWAITING_PAYMENT"
	RegistrationStatusApproved        RegistrationStatus = "APPROVED"
	RegistrationStatusRejected        RegistrationStatus = "REJECTED"
	RegistrationStatusCanceled        RegistrationStatus = "CANCELED"
)

// CapacityConsumingStatuses are the registration statuses counted against
// an event's max_enrollments.
var CapacityConsumingStatuses = []RegistrationStatus{
	RegistrationStatusPending,
	RegistrationStatusAwaitingPayment,
	RegistrationStatusApproved,
}

type Registration struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventID string `gorm:"not null;type:uuid;uniqueIndex:idx_registrations_event_user" json:"event_id"`
	Event   Event  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_registrations_event_user" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	Status RegistrationStatus `gorm:"not null" json:"status"`

	// Attendance. CheckinsCount is denormalized and maintained only by the
	// check-in ledger transaction; it always equals the number of CheckIn
	// rows for this registration.
	CheckedIn      bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckinsCount  int        `gorm:"not null;default:0" json:"checkins_count"`
	FirstCheckinAt *time.Time `json:"first_checkin_at"`
}

// ConsumesCapacity reports whether this registration occupies a seat.
func (r *Registration) ConsumesCapacity() bool {
	for _, status := range CapacityConsumingStatuses {
		if r.Status == status {
			return true
		}
	}
	return false
}

// IsActive reports whether the participant may still cancel.
func (r *Registration) IsActive() bool {
	return r.ConsumesCapacity()
}
