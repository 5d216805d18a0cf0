package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// Create is a function that creates a new notification in the database.
func (s *NotificationStorage) Create(ctx context.Context, notification *entity.Notification) error {
	return s.db.WithContext(ctx).Create(&notification).Error
}

// GetByUserID is a function that gets a user's notifications, newest first.
func (s *NotificationStorage) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a notification as read. The user filter keeps one user
// from touching another's notifications.
func (s *NotificationStorage) MarkRead(ctx context.Context, id, userID uint) error {
	result := s.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errorz.ErrNotFound
	}
	return nil
}
