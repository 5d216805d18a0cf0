package service

import (
	"context"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error)
	Count(ctx context.Context) (int64, error)
	UpdateGuarded(ctx context.Context, id string, apply func(event *entity.Event) error) (*entity.Event, error)
}

type eventScoring interface {
	RecomputeOrganizerScore(ctx context.Context, organizerID uint) error
}

// EventService drives the event status machine:
//
//	DRAFT -> PUBLISHED -> IN_PROGRESS -> FINISHED
//	           \
//	            -> CANCELED (also from DRAFT)
//
// FINISHED and CANCELED are terminal. Every transition requires the
// caller to be the event's organizer.
type EventService struct {
	logger  *logger.Logger
	storage EventStorage
	scoring eventScoring
}

func NewEventService(log *logger.Logger, storage EventStorage, scoring eventScoring) *EventService {
	return &EventService{
		logger:  log,
		storage: storage,
		scoring: scoring,
	}
}

func (s *EventService) Create(ctx context.Context, organizer *entity.User, event *entity.Event) (*entity.Event, error) {
	if !organizer.IsOrganizer() {
		return nil, errorz.ErrForbidden
	}
	event.OrganizerID = organizer.ID
	event.Status = entity.EventStatusDraft
	event.IsInscriptionsOpen = false
	if event.AllowedCheckins <= 0 {
		event.AllowedCheckins = 1
	}
	if event.EventType == "" {
		event.EventType = entity.EventTypeFree
	}
	return s.storage.Create(ctx, event)
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.storage.Get(ctx, id)
}

func (s *EventService) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error) {
	return s.storage.GetWithPagination(ctx, limit, offset, order)
}

func (s *EventService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

// Publish opens the event for registrations. Publishing an already
// published event is a no-op rather than an error.
func (s *EventService) Publish(ctx context.Context, actor *entity.User, eventID string) (*entity.Event, error) {
	return s.transition(ctx, actor, eventID, func(event *entity.Event) error {
		switch event.Status {
		case entity.EventStatusDraft, entity.EventStatusPublished:
			event.Status = entity.EventStatusPublished
			event.IsInscriptionsOpen = true
			return nil
		default:
			return errorz.ErrInvalidTransition
		}
	})
}

// Start moves a published event into IN_PROGRESS, enabling check-ins.
func (s *EventService) Start(ctx context.Context, actor *entity.User, eventID string) (*entity.Event, error) {
	return s.transition(ctx, actor, eventID, func(event *entity.Event) error {
		if event.Status != entity.EventStatusPublished {
			return errorz.ErrInvalidTransition
		}
		event.Status = entity.EventStatusInProgress
		return nil
	})
}

// Finish closes the event, unlocking reviews and certificates, and
// recomputes the organizer's score. The already-finished guard makes the
// XP side effect exactly-once under repeated calls.
func (s *EventService) Finish(ctx context.Context, actor *entity.User, eventID string) (*entity.Event, error) {
	event, err := s.transition(ctx, actor, eventID, func(event *entity.Event) error {
		switch event.Status {
		case entity.EventStatusFinished:
			return errorz.ErrAlreadyFinished
		case entity.EventStatusCanceled:
			return errorz.ErrInvalidTransition
		}
		event.Status = entity.EventStatusFinished
		event.IsInscriptionsOpen = false
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err = s.scoring.RecomputeOrganizerScore(ctx, event.OrganizerID); err != nil {
		s.logger.Errorf("event %s finished but score recomputation failed: %v", event.ID, err)
		return event, err
	}
	return event, nil
}

// Cancel is only allowed before the event has started.
func (s *EventService) Cancel(ctx context.Context, actor *entity.User, eventID string) (*entity.Event, error) {
	return s.transition(ctx, actor, eventID, func(event *entity.Event) error {
		switch event.Status {
		case entity.EventStatusDraft, entity.EventStatusPublished:
			event.Status = entity.EventStatusCanceled
			event.IsInscriptionsOpen = false
			return nil
		default:
			return errorz.ErrInvalidTransition
		}
	})
}

// ToggleInscriptions flips the inscription flag without touching the
// status; the organizer may pause registrations on a published event.
func (s *EventService) ToggleInscriptions(ctx context.Context, actor *entity.User, eventID string) (*entity.Event, error) {
	return s.transition(ctx, actor, eventID, func(event *entity.Event) error {
		event.IsInscriptionsOpen = !event.IsInscriptionsOpen
		return nil
	})
}

func (s *EventService) transition(ctx context.Context, actor *entity.User, eventID string, apply func(event *entity.Event) error) (*entity.Event, error) {
	return s.storage.UpdateGuarded(ctx, eventID, func(event *entity.Event) error {
		if event.OrganizerID != actor.ID {
			return errorz.ErrForbidden
		}
		return apply(event)
	})
}
