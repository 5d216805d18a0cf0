package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

type ReviewStorage struct {
	db *gorm.DB
}

func NewReviewStorage(db *gorm.DB) *ReviewStorage {
	return &ReviewStorage{
		db: db,
	}
}

// Create is a function that creates a new review in the database. The
// unique (event, user) index backs the one-review-per-event rule.
func (s *ReviewStorage) Create(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	err := s.db.WithContext(ctx).Create(&review).Error
	if err != nil {
		return nil, translateError(err)
	}
	return review, nil
}

// GetByEventID is a function that gets all reviews of an event.
func (s *ReviewStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.Review, error) {
	var reviews []entity.Review
	err := s.db.WithContext(ctx).Preload("User").
		Where("event_id = ?", eventID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
