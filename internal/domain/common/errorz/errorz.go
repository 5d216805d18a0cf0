package errorz

import "errors"

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")

	ErrInvalidTransition = errors.New("invalid event status transition")
	ErrAlreadyFinished   = errors.New("event already finished")

	ErrRegistrationClosed = errors.New("registrations are closed")
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrCapacityExceeded   = errors.New("event capacity exceeded")
	ErrInvalidStatus      = errors.New("invalid registration status")

	ErrEventNotInProgress      = errors.New("event is not in progress")
	ErrRegistrationNotApproved = errors.New("registration is not approved")
	ErrCheckInLimitReached     = errors.New("check-in limit reached")
	ErrInvalidToken            = errors.New("invalid check-in token")

	ErrAlreadyExists = errors.New("already exists")
	ErrNotEligible   = errors.New("not eligible")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
