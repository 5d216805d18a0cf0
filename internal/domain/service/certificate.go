package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/dto"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	certrender "github.com/thalyssonDEV/EventSync/pkg/certificate"
	"github.com/thalyssonDEV/EventSync/pkg/generator"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

const (
	validationCodeLength   = 10
	validationCodeAttempts = 5
)

type CertificateStorage interface {
	GetOrCreate(ctx context.Context, eventID string, userID uint) (*entity.Certificate, error)
	GetByID(ctx context.Context, id string) (*entity.Certificate, error)
	GetByCode(ctx context.Context, code string) (*entity.Certificate, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ClaimCode(ctx context.Context, id, code string, issuedAt time.Time) (bool, error)
	SetArtifactPath(ctx context.Context, id, path string) error
}

type certificateRenderer interface {
	Render(data certrender.Data) (string, error)
}

// CertificateService issues one certificate per (event, user) with a
// globally unique validation code. Issuance is idempotent: repeated or
// concurrent calls converge on the same certificate and code.
type CertificateService struct {
	logger        *logger.Logger
	storage       CertificateStorage
	events        reviewEventStorage
	registrations reviewRegistrationStorage
	renderer      certificateRenderer
}

func NewCertificateService(
	log *logger.Logger,
	storage CertificateStorage,
	events reviewEventStorage,
	registrations reviewRegistrationStorage,
	renderer certificateRenderer,
) *CertificateService {
	return &CertificateService{
		logger:        log,
		storage:       storage,
		events:        events,
		registrations: registrations,
		renderer:      renderer,
	}
}

// Issue returns the caller's certificate for a finished event they
// attended, allocating the validation code on first issuance.
func (s *CertificateService) Issue(ctx context.Context, user *entity.User, eventID string) (*entity.Certificate, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != entity.EventStatusFinished {
		return nil, errorz.ErrNotEligible
	}

	registration, err := s.registrations.GetByEventAndUser(ctx, eventID, user.ID)
	if errors.Is(err, errorz.ErrNotFound) {
		return nil, errorz.ErrNotEligible
	}
	if err != nil {
		return nil, err
	}
	if !registration.CheckedIn {
		return nil, errorz.ErrNotEligible
	}

	certificate, err := s.storage.GetOrCreate(ctx, eventID, user.ID)
	if err != nil {
		return nil, err
	}

	if !certificate.Issued() {
		certificate, err = s.assignCode(ctx, certificate)
		if err != nil {
			return nil, err
		}
	}

	s.render(ctx, certificate, event, user)
	return certificate, nil
}

// assignCode allocates a unique validation code. Collisions with
// existing codes regenerate; losing the claim race to a concurrent
// issuer is fine, the committed code wins either way.
func (s *CertificateService) assignCode(ctx context.Context, certificate *entity.Certificate) (*entity.Certificate, error) {
	for attempt := 0; attempt < validationCodeAttempts; attempt++ {
		code, err := generator.Code(validationCodeLength)
		if err != nil {
			return nil, err
		}

		taken, err := s.storage.CodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		_, err = s.storage.ClaimCode(ctx, certificate.ID, code, time.Now())
		if errors.Is(err, errorz.ErrAlreadyExists) {
			continue // code raced into the index between check and claim
		}
		if err != nil {
			return nil, err
		}
		return s.storage.GetByID(ctx, certificate.ID)
	}
	return nil, fmt.Errorf("failed to allocate a unique validation code after %d attempts", validationCodeAttempts)
}

// render produces the certificate artifact. Rendering is best-effort:
// failures are logged and never fail the issuance.
func (s *CertificateService) render(ctx context.Context, certificate *entity.Certificate, event *entity.Event, user *entity.User) {
	if s.renderer == nil || certificate.ArtifactPath != "" {
		return
	}

	issuedAt := time.Now()
	if certificate.IssuedAt != nil {
		issuedAt = *certificate.IssuedAt
	}
	path, err := s.renderer.Render(certrender.Data{
		ParticipantName: user.FullName(),
		EventTitle:      event.Title,
		ValidationCode:  certificate.Code(),
		WorkloadHours:   event.WorkloadHours,
		IssueDate:       issuedAt,
	})
	if err != nil {
		s.logger.Errorf("failed to render certificate %s: %v", certificate.ID, err)
		return
	}
	if err = s.storage.SetArtifactPath(ctx, certificate.ID, path); err != nil {
		s.logger.Errorf("failed to store artifact path for certificate %s: %v", certificate.ID, err)
		return
	}
	certificate.ArtifactPath = path
}

// ValidateByCode is the public, unauthenticated certificate lookup.
func (s *CertificateService) ValidateByCode(ctx context.Context, code string) (*dto.CertificateSummary, error) {
	if code == "" {
		return nil, errorz.ErrNotFound
	}
	certificate, err := s.storage.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	summary := dto.NewCertificateSummaryFromEntity(certificate)
	return &summary, nil
}
