package service

import (
	"context"
	"fmt"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

type NotificationStorage interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

type notifyUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
}

type notifySMTPClient interface {
	Send(to, subject, body string)
}

// NotifyService fans registration and review events out to in-app
// notifications and email. Everything here is best-effort: failures are
// logged and never reach the operation that triggered them.
type NotifyService struct {
	logger  *logger.Logger
	storage NotificationStorage
	users   notifyUserStorage
	smtp    notifySMTPClient
}

func NewNotifyService(log *logger.Logger, storage NotificationStorage, users notifyUserStorage, smtp notifySMTPClient) *NotifyService {
	return &NotifyService{
		logger:  log,
		storage: storage,
		users:   users,
		smtp:    smtp,
	}
}

func (s *NotifyService) RegistrationReceived(ctx context.Context, registration *entity.Registration, event *entity.Event) {
	s.notify(ctx, registration.UserID,
		fmt.Sprintf("Registration received: %s", event.Title),
		"We received your registration. Wait for the organizer's approval.")
}

func (s *NotifyService) PaymentPending(ctx context.Context, registration *entity.Registration, event *entity.Event) {
	s.notify(ctx, registration.UserID,
		fmt.Sprintf("Payment pending: %s", event.Title),
		fmt.Sprintf("We are waiting for your payment of $%.2f.", event.Price))
}

func (s *NotifyService) RegistrationApproved(ctx context.Context, registration *entity.Registration, event *entity.Event) {
	s.notify(ctx, registration.UserID,
		fmt.Sprintf("Registration confirmed! %s", event.Title),
		"You're in! Your check-in QR code is available.")
}

func (s *NotifyService) RegistrationRejected(ctx context.Context, registration *entity.Registration, event *entity.Event) {
	s.notify(ctx, registration.UserID,
		fmt.Sprintf("Registration rejected: %s", event.Title),
		"Unfortunately your registration was not accepted.")
}

func (s *NotifyService) ReviewReceived(ctx context.Context, review *entity.Review, event *entity.Event) {
	s.notify(ctx, event.OrganizerID,
		fmt.Sprintf("New review on %s", event.Title),
		fmt.Sprintf("A participant left a %d-star review on your event.", review.Rating))
}

func (s *NotifyService) GetByUserID(ctx context.Context, user *entity.User, limit, offset int) ([]entity.Notification, error) {
	return s.storage.GetByUserID(ctx, user.ID, limit, offset)
}

func (s *NotifyService) MarkRead(ctx context.Context, user *entity.User, id uint) error {
	return s.storage.MarkRead(ctx, id, user.ID)
}

func (s *NotifyService) notify(ctx context.Context, userID uint, title, message string) {
	if err := s.storage.Create(ctx, &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}); err != nil {
		s.logger.Errorf("failed to store notification for user %d: %v", userID, err)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		s.logger.Errorf("failed to load user %d for email notification: %v", userID, err)
		return
	}
	if s.smtp != nil && user.Email != "" {
		go s.smtp.Send(user.Email, title, message)
	}
}
