package service

import (
	"context"
	"errors"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

type ReviewStorage interface {
	Create(ctx context.Context, review *entity.Review) (*entity.Review, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.Review, error)
}

type reviewEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type reviewRegistrationStorage interface {
	GetByEventAndUser(ctx context.Context, eventID string, userID uint) (*entity.Registration, error)
}

type reviewNotifier interface {
	ReviewReceived(ctx context.Context, review *entity.Review, event *entity.Event)
}

// ReviewService gates reviews on actual attendance of a finished event
// and feeds accepted reviews into the scoring engine.
type ReviewService struct {
	logger        *logger.Logger
	storage       ReviewStorage
	events        reviewEventStorage
	registrations reviewRegistrationStorage
	scoring       eventScoring
	notifier      reviewNotifier
}

func NewReviewService(
	log *logger.Logger,
	storage ReviewStorage,
	events reviewEventStorage,
	registrations reviewRegistrationStorage,
	scoring eventScoring,
	notifier reviewNotifier,
) *ReviewService {
	return &ReviewService{
		logger:        log,
		storage:       storage,
		events:        events,
		registrations: registrations,
		scoring:       scoring,
		notifier:      notifier,
	}
}

func (s *ReviewService) Create(ctx context.Context, user *entity.User, eventID string, rating int, comment string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errorz.ErrInvalidRating
	}

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

	review, err := s.storage.Create(ctx, &entity.Review{
		EventID: eventID,
		UserID:  user.ID,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return nil, err
	}

	if err = s.scoring.RecomputeOrganizerScore(ctx, event.OrganizerID); err != nil {
		s.logger.Errorf("review %d created but score recomputation failed: %v", review.ID, err)
		return review, err
	}

	s.notifier.ReviewReceived(ctx, review, event)
	return review, nil
}

func (s *ReviewService) GetByEventID(ctx context.Context, eventID string) ([]entity.Review, error) {
	return s.storage.GetByEventID(ctx, eventID)
}
