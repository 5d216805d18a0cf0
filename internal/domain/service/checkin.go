package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
	qr "github.com/thalyssonDEV/EventSync/pkg/qrcode"
)

type CheckInStorage interface {
	Append(ctx context.Context, registrationID string, guard func(event *entity.Event, registration *entity.Registration) error) (*entity.CheckIn, error)
}

type checkInRegistrationStorage interface {
	Get(ctx context.Context, id string) (*entity.Registration, error)
}

type checkInTokenStorage interface {
	Set(ctx context.Context, token, registrationID string, expiration time.Duration) error
	Resolve(ctx context.Context, token string) (string, error)
}

// CheckInService is the attendance ledger. The pass token proves the
// identity of the scanned participant; the scanning organizer is the
// authenticated caller of CheckIn.
type CheckInService struct {
	logger        *logger.Logger
	storage       CheckInStorage
	registrations checkInRegistrationStorage
	tokens        checkInTokenStorage
	passConfig    qr.Config
	tokenTTL      time.Duration
}

func NewCheckInService(
	log *logger.Logger,
	storage CheckInStorage,
	registrations checkInRegistrationStorage,
	tokens checkInTokenStorage,
	passConfig qr.Config,
	tokenTTL time.Duration,
) *CheckInService {
	return &CheckInService{
		logger:        log,
		storage:       storage,
		registrations: registrations,
		tokens:        tokens,
		passConfig:    passConfig,
		tokenTTL:      tokenTTL,
	}
}

// IssuePass creates a short-lived check-in token for the caller's own
// approved registration and renders it as a QR code PNG.
func (s *CheckInService) IssuePass(ctx context.Context, actor *entity.User, registrationID string) (string, []byte, error) {
	registration, err := s.registrations.Get(ctx, registrationID)
	if err != nil {
		return "", nil, err
	}
	if registration.UserID != actor.ID {
		return "", nil, errorz.ErrForbidden
	}
	if registration.Status != entity.RegistrationStatusApproved {
		return "", nil, errorz.ErrRegistrationNotApproved
	}

	token := uuid.New().String()
	if err = s.tokens.Set(ctx, token, registration.ID, s.tokenTTL); err != nil {
		return "", nil, err
	}

	cfg := s.passConfig
	cfg.Content = token
	png, err := cfg.Generate()
	if err != nil {
		return "", nil, err
	}
	return token, png, nil
}

// CheckIn records one attendance for the registration behind the scanned
// token. Every call either appends a check-in or fails; there is no
// silent no-op. The storage runs the guard under a registration row
// lock, so the allowance cannot be exceeded by concurrent scans.
func (s *CheckInService) CheckIn(ctx context.Context, actor *entity.User, eventID, token string) (*entity.CheckIn, error) {
	registrationID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	checkIn, err := s.storage.Append(ctx, registrationID, func(event *entity.Event, registration *entity.Registration) error {
		if event.OrganizerID != actor.ID {
			return errorz.ErrForbidden
		}
		if event.ID != eventID {
			return errorz.ErrInvalidToken
		}
		if event.Status != entity.EventStatusInProgress {
			return errorz.ErrEventNotInProgress
		}
		if registration.Status != entity.RegistrationStatusApproved {
			return errorz.ErrRegistrationNotApproved
		}
		if registration.CheckinsCount >= event.AllowedCheckins {
			return errorz.ErrCheckInLimitReached
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("check-in recorded (registration_id=%s, event_id=%s)", registrationID, eventID)
	return checkIn, nil
}
