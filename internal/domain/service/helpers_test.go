package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/dto"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	certrender "github.com/thalyssonDEV/EventSync/pkg/certificate"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// memEventStorage keeps events in a map and applies guarded updates to a
// copy before committing, matching the transactional storage contract.
type memEventStorage struct {
	nextID int
	events map[string]*entity.Event
}

func newMemEventStorage() *memEventStorage {
	return &memEventStorage{events: make(map[string]*entity.Event)}
}

func (s *memEventStorage) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	s.nextID++
	event.ID = fmt.Sprintf("event-%d", s.nextID)
	stored := *event
	s.events[event.ID] = &stored
	return event, nil
}

func (s *memEventStorage) Get(_ context.Context, id string) (*entity.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (s *memEventStorage) GetWithPagination(_ context.Context, limit, offset int, _ string) ([]entity.Event, error) {
	var out []entity.Event
	for _, event := range s.events {
		out = append(out, *event)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memEventStorage) Count(_ context.Context) (int64, error) {
	return int64(len(s.events)), nil
}

func (s *memEventStorage) UpdateGuarded(_ context.Context, id string, apply func(event *entity.Event) error) (*entity.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *event
	if err := apply(&copied); err != nil {
		return nil, err
	}
	s.events[id] = &copied
	result := copied
	return &result, nil
}

// memRegistrationStorage mirrors the admission contract: Admit resolves
// the event, counts seats and duplicates, then lets decide rule.
type memRegistrationStorage struct {
	nextID        int
	registrations map[string]*entity.Registration
	events        *memEventStorage
}

func newMemRegistrationStorage(events *memEventStorage) *memRegistrationStorage {
	return &memRegistrationStorage{
		registrations: make(map[string]*entity.Registration),
		events:        events,
	}
}

func (s *memRegistrationStorage) Admit(ctx context.Context, registration *entity.Registration, decide func(event *entity.Event, activeCount int64, alreadyRegistered bool) error) (*entity.Registration, error) {
	event, err := s.events.Get(ctx, registration.EventID)
	if err != nil {
		return nil, err
	}

	var activeCount int64
	alreadyRegistered := false
	for _, existing := range s.registrations {
		if existing.EventID != registration.EventID {
			continue
		}
		if existing.ConsumesCapacity() {
			activeCount++
		}
		if existing.UserID == registration.UserID {
			alreadyRegistered = true
		}
	}

	if err = decide(event, activeCount, alreadyRegistered); err != nil {
		return nil, err
	}

	s.nextID++
	registration.ID = fmt.Sprintf("registration-%d", s.nextID)
	stored := *registration
	s.registrations[registration.ID] = &stored
	return registration, nil
}

func (s *memRegistrationStorage) Get(ctx context.Context, id string) (*entity.Registration, error) {
	registration, ok := s.registrations[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *registration
	if event, err := s.events.Get(ctx, copied.EventID); err == nil {
		copied.Event = *event
	}
	return &copied, nil
}

func (s *memRegistrationStorage) GetByEventAndUser(ctx context.Context, eventID string, userID uint) (*entity.Registration, error) {
	for id, registration := range s.registrations {
		if registration.EventID == eventID && registration.UserID == userID {
			return s.Get(ctx, id)
		}
	}
	return nil, errorz.ErrNotFound
}

func (s *memRegistrationStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.Registration, error) {
	var out []entity.Registration
	for id, registration := range s.registrations {
		if registration.EventID == eventID {
			loaded, err := s.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			out = append(out, *loaded)
		}
	}
	return out, nil
}

func (s *memRegistrationStorage) UpdateGuarded(ctx context.Context, id string, apply func(registration *entity.Registration) error) (*entity.Registration, error) {
	loaded, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = apply(loaded); err != nil {
		return nil, err
	}
	stored := *loaded
	s.registrations[id] = &stored
	return loaded, nil
}

// memCheckInStorage appends check-ins under the same guard contract as
// the ledger transaction.
type memCheckInStorage struct {
	nextID        int
	checkIns      []entity.CheckIn
	registrations *memRegistrationStorage
}

func newMemCheckInStorage(registrations *memRegistrationStorage) *memCheckInStorage {
	return &memCheckInStorage{registrations: registrations}
}

func (s *memCheckInStorage) Append(ctx context.Context, registrationID string, guard func(event *entity.Event, registration *entity.Registration) error) (*entity.CheckIn, error) {
	registration, err := s.registrations.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if err = guard(&registration.Event, registration); err != nil {
		return nil, err
	}

	s.nextID++
	now := time.Now()
	checkIn := entity.CheckIn{
		ID:             fmt.Sprintf("checkin-%d", s.nextID),
		RegistrationID: registrationID,
		CreatedAt:      now,
	}
	s.checkIns = append(s.checkIns, checkIn)

	registration.CheckinsCount++
	if !registration.CheckedIn {
		registration.CheckedIn = true
		registration.FirstCheckinAt = &now
	}
	stored := *registration
	s.registrations.registrations[registrationID] = &stored
	return &checkIn, nil
}

func (s *memCheckInStorage) CountByRegistrationID(_ context.Context, registrationID string) (int64, error) {
	var count int64
	for _, checkIn := range s.checkIns {
		if checkIn.RegistrationID == registrationID {
			count++
		}
	}
	return count, nil
}

type memReviewStorage struct {
	nextID  uint
	reviews []*entity.Review
}

func (s *memReviewStorage) Create(_ context.Context, review *entity.Review) (*entity.Review, error) {
	for _, existing := range s.reviews {
		if existing.EventID == review.EventID && existing.UserID == review.UserID {
			return nil, errorz.ErrAlreadyExists
		}
	}
	s.nextID++
	review.ID = s.nextID
	s.reviews = append(s.reviews, review)
	return review, nil
}

func (s *memReviewStorage) GetByEventID(_ context.Context, eventID string) ([]entity.Review, error) {
	var out []entity.Review
	for _, review := range s.reviews {
		if review.EventID == eventID {
			out = append(out, *review)
		}
	}
	return out, nil
}

type memCertificateStorage struct {
	nextID       int
	certificates map[string]*entity.Certificate
}

func newMemCertificateStorage() *memCertificateStorage {
	return &memCertificateStorage{certificates: make(map[string]*entity.Certificate)}
}

func (s *memCertificateStorage) GetOrCreate(_ context.Context, eventID string, userID uint) (*entity.Certificate, error) {
	for _, certificate := range s.certificates {
		if certificate.EventID == eventID && certificate.UserID == userID {
			copied := *certificate
			return &copied, nil
		}
	}
	s.nextID++
	certificate := &entity.Certificate{
		ID:        fmt.Sprintf("certificate-%d", s.nextID),
		CreatedAt: time.Now(),
		EventID:   eventID,
		UserID:    userID,
	}
	s.certificates[certificate.ID] = certificate
	copied := *certificate
	return &copied, nil
}

func (s *memCertificateStorage) GetByID(_ context.Context, id string) (*entity.Certificate, error) {
	certificate, ok := s.certificates[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *certificate
	return &copied, nil
}

func (s *memCertificateStorage) GetByCode(_ context.Context, code string) (*entity.Certificate, error) {
	for _, certificate := range s.certificates {
		if certificate.ValidationCode != nil && *certificate.ValidationCode == code {
			copied := *certificate
			return &copied, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (s *memCertificateStorage) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := s.GetByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (s *memCertificateStorage) ClaimCode(_ context.Context, id, code string, issuedAt time.Time) (bool, error) {
	certificate, ok := s.certificates[id]
	if !ok {
		return false, errorz.ErrNotFound
	}
	for _, other := range s.certificates {
		if other.ValidationCode != nil && *other.ValidationCode == code {
			return false, errorz.ErrAlreadyExists
		}
	}
	if certificate.ValidationCode != nil {
		return false, nil
	}
	certificate.ValidationCode = &code
	certificate.IssuedAt = &issuedAt
	return true, nil
}

func (s *memCertificateStorage) SetArtifactPath(_ context.Context, id, path string) error {
	certificate, ok := s.certificates[id]
	if !ok {
		return errorz.ErrNotFound
	}
	certificate.ArtifactPath = path
	return nil
}

type memNotificationStorage struct {
	nextID        uint
	notifications []*entity.Notification
}

func (s *memNotificationStorage) Create(_ context.Context, notification *entity.Notification) error {
	s.nextID++
	notification.ID = s.nextID
	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *memNotificationStorage) GetByUserID(_ context.Context, userID uint, limit, offset int) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			out = append(out, *notification)
		}
	}
	return out, nil
}

func (s *memNotificationStorage) MarkRead(_ context.Context, id, userID uint) error {
	for _, notification := range s.notifications {
		if notification.ID == id && notification.UserID == userID {
			notification.Read = true
			return nil
		}
	}
	return errorz.ErrNotFound
}

type memUserStorage struct {
	users map[uint]*entity.User
}

func (s *memUserStorage) Get(_ context.Context, id uint) (*entity.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type memTokens struct {
	tokens map[string]string
}

func newMemTokens() *memTokens {
	return &memTokens{tokens: make(map[string]string)}
}

func (s *memTokens) Set(_ context.Context, token, registrationID string, _ time.Duration) error {
	s.tokens[token] = registrationID
	return nil
}

func (s *memTokens) Resolve(_ context.Context, token string) (string, error) {
	registrationID, ok := s.tokens[token]
	if !ok {
		return "", errorz.ErrInvalidToken
	}
	return registrationID, nil
}

// fakeScoring records recompute calls and optionally fails them.
type fakeScoring struct {
	calls []uint
	err   error
}

func (s *fakeScoring) RecomputeOrganizerScore(_ context.Context, organizerID uint) error {
	s.calls = append(s.calls, organizerID)
	return s.err
}

// fakeNotifier records which notifications fired, in order.
type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) RegistrationReceived(context.Context, *entity.Registration, *entity.Event) {
	n.sent = append(n.sent, "received")
}

func (n *fakeNotifier) RegistrationApproved(context.Context, *entity.Registration, *entity.Event) {
	n.sent = append(n.sent, "approved")
}

func (n *fakeNotifier) RegistrationRejected(context.Context, *entity.Registration, *entity.Event) {
	n.sent = append(n.sent, "rejected")
}

func (n *fakeNotifier) PaymentPending(context.Context, *entity.Registration, *entity.Event) {
	n.sent = append(n.sent, "payment")
}

func (n *fakeNotifier) ReviewReceived(context.Context, *entity.Review, *entity.Event) {
	n.sent = append(n.sent, "review")
}

type fakeRenderer struct {
	rendered []certrender.Data
	err      error
}

func (r *fakeRenderer) Render(data certrender.Data) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.rendered = append(r.rendered, data)
	return "/tmp/cert_" + data.ValidationCode + ".png", nil
}

// fixedScoringStorage feeds canned aggregates into the compute callback
// and captures the resulting score.
type fixedScoringStorage struct {
	stats dto.OrganizerStats
	score dto.OrganizerScore
}

func (s *fixedScoringStorage) RecomputeScore(_ context.Context, _ uint, compute func(stats dto.OrganizerStats) dto.OrganizerScore) error {
	s.score = compute(s.stats)
	return nil
}
