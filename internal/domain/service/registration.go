package service

import (
	"context"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

type RegistrationStorage interface {
	Admit(ctx context.Context, registration *entity.Registration, decide func(event *entity.Event, activeCount int64, alreadyRegistered bool) error) (*entity.Registration, error)
	Get(ctx context.Context, id string) (*entity.Registration, error)
	GetByEventAndUser(ctx context.Context, eventID string, userID uint) (*entity.Registration, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.Registration, error)
	UpdateGuarded(ctx context.Context, id string, apply func(registration *entity.Registration) error) (*entity.Registration, error)
}

type registrationNotifier interface {
	RegistrationReceived(ctx context.Context, registration *entity.Registration, event *entity.Event)
	RegistrationApproved(ctx context.Context, registration *entity.Registration, event *entity.Event)
	RegistrationRejected(ctx context.Context, registration *entity.Registration, event *entity.Event)
	PaymentPending(ctx context.Context, registration *entity.Registration, event *entity.Event)
}

// RegistrationService owns admission control: who gets a seat, with
// which initial status, and how a registration moves between statuses
// afterwards.
type RegistrationService struct {
	logger   *logger.Logger
	storage  RegistrationStorage
	notifier registrationNotifier
}

func NewRegistrationService(log *logger.Logger, storage RegistrationStorage, notifier registrationNotifier) *RegistrationService {
	return &RegistrationService{
		logger:   log,
		storage:  storage,
		notifier: notifier,
	}
}

// Register admits the user to the event. The storage runs decide under
// an event row lock, so the capacity check cannot race another
// registration for the last seat.
func (s *RegistrationService) Register(ctx context.Context, user *entity.User, eventID string) (*entity.Registration, error) {
	registration := &entity.Registration{
		EventID: eventID,
		UserID:  user.ID,
	}

	var admittedTo entity.Event
	created, err := s.storage.Admit(ctx, registration, func(event *entity.Event, activeCount int64, alreadyRegistered bool) error {
		if !event.AcceptsRegistrations() {
			return errorz.ErrRegistrationClosed
		}
		if alreadyRegistered {
			return errorz.ErrAlreadyRegistered
		}
		if event.MaxEnrollments != nil && activeCount >= int64(*event.MaxEnrollments) {
			return errorz.ErrCapacityExceeded
		}
		registration.Status = event.InitialRegistrationStatus()
		admittedTo = *event
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch created.Status {
	case entity.RegistrationStatusAwaitingPayment:
		s.notifier.PaymentPending(ctx, created, &admittedTo)
	case entity.RegistrationStatusApproved:
		s.notifier.RegistrationApproved(ctx, created, &admittedTo)
	default:
		s.notifier.RegistrationReceived(ctx, created, &admittedTo)
	}
	return created, nil
}

func (s *RegistrationService) Get(ctx context.Context, id string) (*entity.Registration, error) {
	return s.storage.Get(ctx, id)
}

func (s *RegistrationService) GetByEventID(ctx context.Context, eventID string) ([]entity.Registration, error) {
	return s.storage.GetByEventID(ctx, eventID)
}

// ConfirmPayment moves an AWAITING_PAYMENT registration forward: to
// PENDING when the event still requires approval, straight to APPROVED
// otherwise.
func (s *RegistrationService) ConfirmPayment(ctx context.Context, actor *entity.User, registrationID string) (*entity.Registration, error) {
	updated, err := s.storage.UpdateGuarded(ctx, registrationID, func(registration *entity.Registration) error {
		if registration.Event.OrganizerID != actor.ID {
			return errorz.ErrForbidden
		}
		if registration.Status != entity.RegistrationStatusAwaitingPayment {
			return errorz.ErrInvalidStatus
		}
		if registration.Event.RequiresApproval {
			registration.Status = entity.RegistrationStatusPending
		} else {
			registration.Status = entity.RegistrationStatusApproved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == entity.RegistrationStatusApproved {
		s.notifier.RegistrationApproved(ctx, updated, &updated.Event)
	} else {
		s.notifier.RegistrationReceived(ctx, updated, &updated.Event)
	}
	return updated, nil
}

// Approve accepts a PENDING registration.
func (s *RegistrationService) Approve(ctx context.Context, actor *entity.User, registrationID string) (*entity.Registration, error) {
	updated, err := s.decide(ctx, actor, registrationID, entity.RegistrationStatusApproved)
	if err != nil {
		return nil, err
	}
	s.notifier.RegistrationApproved(ctx, updated, &updated.Event)
	return updated, nil
}

// Reject refuses a PENDING registration, freeing its seat.
func (s *RegistrationService) Reject(ctx context.Context, actor *entity.User, registrationID string) (*entity.Registration, error) {
	updated, err := s.decide(ctx, actor, registrationID, entity.RegistrationStatusRejected)
	if err != nil {
		return nil, err
	}
	s.notifier.RegistrationRejected(ctx, updated, &updated.Event)
	return updated, nil
}

func (s *RegistrationService) decide(ctx context.Context, actor *entity.User, registrationID string, status entity.RegistrationStatus) (*entity.Registration, error) {
	return s.storage.UpdateGuarded(ctx, registrationID, func(registration *entity.Registration) error {
		if registration.Event.OrganizerID != actor.ID {
			return errorz.ErrForbidden
		}
		if registration.Status != entity.RegistrationStatusPending {
			return errorz.ErrInvalidStatus
		}
		registration.Status = status
		return nil
	})
}

// Cancel lets a participant withdraw their own registration.
func (s *RegistrationService) Cancel(ctx context.Context, actor *entity.User, registrationID string) (*entity.Registration, error) {
	return s.storage.UpdateGuarded(ctx, registrationID, func(registration *entity.Registration) error {
		if registration.UserID != actor.ID {
			return errorz.ErrForbidden
		}
		if !registration.IsActive() {
			return errorz.ErrInvalidStatus
		}
		registration.Status = entity.RegistrationStatusCanceled
		return nil
	})
}
