package service

import (
	"context"
	"errors"
	"testing"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

func newEventFixture(t *testing.T) (*EventService, *memEventStorage, *fakeScoring, *entity.User) {
	t.Helper()
	storage := newMemEventStorage()
	scoring := &fakeScoring{}
	svc := NewEventService(testLogger(), storage, scoring)
	organizer := &entity.User{Role: entity.RoleOrganizer}
	organizer.ID = 1
	return svc, storage, scoring, organizer
}

func createEvent(t *testing.T, svc *EventService, organizer *entity.User) *entity.Event {
	t.Helper()
	event, err := svc.Create(context.Background(), organizer, &entity.Event{Title: "Go Meetup"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return event
}

func TestEventCreate(t *testing.T) {
	svc, _, _, organizer := newEventFixture(t)

	event := createEvent(t, svc, organizer)
	if event.Status != entity.EventStatusDraft {
		t.Errorf("status = %q, want DRAFT", event.Status)
	}
	if event.IsInscriptionsOpen {
		t.Error("new event must not accept registrations")
	}
	if event.AllowedCheckins != 1 {
		t.Errorf("allowed checkins = %d, want 1", event.AllowedCheckins)
	}
	if event.EventType != entity.EventTypeFree {
		t.Errorf("event type = %q, want FREE", event.EventType)
	}
	if event.OrganizerID != organizer.ID {
		t.Errorf("organizer id = %d, want %d", event.OrganizerID, organizer.ID)
	}
}

func TestEventCreateRequiresOrganizerRole(t *testing.T) {
	svc, _, _, _ := newEventFixture(t)

	participant := &entity.User{Role: entity.RoleParticipant}
	participant.ID = 2
	_, err := svc.Create(context.Background(), participant, &entity.Event{Title: "nope"})
	if !errors.Is(err, errorz.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _, organizer := newEventFixture(t)
	event := createEvent(t, svc, organizer)

	published, err := svc.Publish(ctx, organizer, event.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.Status != entity.EventStatusPublished || !published.IsInscriptionsOpen {
		t.Errorf("after publish: status=%q open=%v", published.Status, published.IsInscriptionsOpen)
	}

	// Publishing again is a no-op, not an error.
	if _, err = svc.Publish(ctx, organizer, event.ID); err != nil {
		t.Fatalf("re-Publish: %v", err)
	}

	started, err := svc.Start(ctx, organizer, event.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if started.Status != entity.EventStatusInProgress {
		t.Errorf("after start: status = %q", started.Status)
	}

	finished, err := svc.Finish(ctx, organizer, event.ID)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if finished.Status != entity.EventStatusFinished {
		t.Errorf("after finish: status = %q", finished.Status)
	}
	if finished.IsInscriptionsOpen {
		t.Error("finished event must close inscriptions")
	}
}

func TestEventInvalidTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		prepare func(t *testing.T, svc *EventService, organizer *entity.User, eventID string)
		action  func(svc *EventService, organizer *entity.User, eventID string) error
		want    error
	}{
		{
			name:    "start from draft",
			prepare: func(*testing.T, *EventService, *entity.User, string) {},
			action: func(svc *EventService, organizer *entity.User, eventID string) error {
				_, err := svc.Start(ctx, organizer, eventID)
				return err
			},
			want: errorz.ErrInvalidTransition,
		},
		{
			name: "finish twice",
			prepare: func(t *testing.T, svc *EventService, organizer *entity.User, eventID string) {
				mustTransition(t, svc.Publish, organizer, eventID)
				mustTransition(t, svc.Start, organizer, eventID)
				mustTransition(t, svc.Finish, organizer, eventID)
			},
			action: func(svc *EventService, organizer *entity.User, eventID string) error {
				_, err := svc.Finish(ctx, organizer, eventID)
				return err
			},
			want: errorz.ErrAlreadyFinished,
		},
		{
			name: "finish canceled event",
			prepare: func(t *testing.T, svc *EventService, organizer *entity.User, eventID string) {
				mustTransition(t, svc.Cancel, organizer, eventID)
			},
			action: func(svc *EventService, organizer *entity.User, eventID string) error {
				_, err := svc.Finish(ctx, organizer, eventID)
				return err
			},
			want: errorz.ErrInvalidTransition,
		},
		{
			name: "cancel after start",
			prepare: func(t *testing.T, svc *EventService, organizer *entity.User, eventID string) {
				mustTransition(t, svc.Publish, organizer, eventID)
				mustTransition(t, svc.Start, organizer, eventID)
			},
			action: func(svc *EventService, organizer *entity.User, eventID string) error {
				_, err := svc.Cancel(ctx, organizer, eventID)
				return err
			},
			want: errorz.ErrInvalidTransition,
		},
		{
			name: "publish finished event",
			prepare: func(t *testing.T, svc *EventService, organizer *entity.User, eventID string) {
				mustTransition(t, svc.Publish, organizer, eventID)
				mustTransition(t, svc.Start, organizer, eventID)
				mustTransition(t, svc.Finish, organizer, eventID)
			},
			action: func(svc *EventService, organizer *entity.User, eventID string) error {
				_, err := svc.Publish(ctx, organizer, eventID)
				return err
			},
			want: errorz.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, organizer := newEventFixture(t)
			event := createEvent(t, svc, organizer)
			tt.prepare(t, svc, organizer, event.ID)

			if err := tt.action(svc, organizer, event.ID); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func mustTransition(t *testing.T, fn func(context.Context, *entity.User, string) (*entity.Event, error), organizer *entity.User, eventID string) {
	t.Helper()
	if _, err := fn(context.Background(), organizer, eventID); err != nil {
		t.Fatalf("transition: %v", err)
	}
}

func TestEventTransitionsForbiddenForNonOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, _, organizer := newEventFixture(t)
	event := createEvent(t, svc, organizer)

	stranger := &entity.User{Role: entity.RoleOrganizer}
	stranger.ID = 99
	if _, err := svc.Publish(ctx, stranger, event.ID); !errors.Is(err, errorz.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestEventFinishRecomputesScoreOnce(t *testing.T) {
	ctx := context.Background()
	svc, _, scoring, organizer := newEventFixture(t)
	event := createEvent(t, svc, organizer)

	mustTransition(t, svc.Publish, organizer, event.ID)
	mustTransition(t, svc.Start, organizer, event.ID)
	if _, err := svc.Finish(ctx, organizer, event.ID); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := svc.Finish(ctx, organizer, event.ID); !errors.Is(err, errorz.ErrAlreadyFinished) {
		t.Fatalf("second Finish: err = %v, want ErrAlreadyFinished", err)
	}

	if len(scoring.calls) != 1 {
		t.Errorf("score recomputed %d times, want 1", len(scoring.calls))
	}
	if len(scoring.calls) == 1 && scoring.calls[0] != organizer.ID {
		t.Errorf("recomputed for organizer %d, want %d", scoring.calls[0], organizer.ID)
	}
}

func TestEventToggleInscriptions(t *testing.T) {
	ctx := context.Background()
	svc, _, _, organizer := newEventFixture(t)
	event := createEvent(t, svc, organizer)
	mustTransition(t, svc.Publish, organizer, event.ID)

	toggled, err := svc.ToggleInscriptions(ctx, organizer, event.ID)
	if err != nil {
		t.Fatalf("ToggleInscriptions: %v", err)
	}
	if toggled.IsInscriptionsOpen {
		t.Error("inscriptions still open after toggle")
	}
	if toggled.Status != entity.EventStatusPublished {
		t.Errorf("toggle changed status to %q", toggled.Status)
	}

	toggled, err = svc.ToggleInscriptions(ctx, organizer, event.ID)
	if err != nil {
		t.Fatalf("ToggleInscriptions: %v", err)
	}
	if !toggled.IsInscriptionsOpen {
		t.Error("inscriptions still closed after second toggle")
	}
}
