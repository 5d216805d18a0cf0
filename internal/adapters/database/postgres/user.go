package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thalyssonDEV/EventSync/internal/domain/dto"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

// Create is a function that creates a new user in the database.
func (s *UserStorage) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Create(&user).Error
	return user, translateError(err)
}

// Get is a function that gets a user from the database by id.
func (s *UserStorage) Get(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByEmail is a function that gets a user from the database by email.
func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Update is a function that updates a user in the database.
func (s *UserStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&user).Error
	return user, err
}

// RecomputeScore locks the organizer row, reads the scoring aggregates
// inside the same transaction and writes the computed score back, but
// only when something actually changed. compute must be pure.
func (s *UserStorage) RecomputeScore(ctx context.Context, organizerID uint, compute func(stats dto.OrganizerStats) dto.OrganizerScore) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", organizerID).First(&user).Error; err != nil {
			return translateError(err)
		}

		var stats dto.OrganizerStats
		if err := tx.Model(&entity.Review{}).
			Joins("JOIN events ON events.id = reviews.event_id").
			Where("events.organizer_id = ? AND events.status = ?", organizerID, entity.EventStatusFinished).
			Select("COALESCE(AVG(reviews.rating), 0)").
			Scan(&stats.AvgRating).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.CheckIn{}).
			Joins("JOIN registrations ON registrations.id = check_ins.registration_id").
			Joins("JOIN events ON events.id = registrations.event_id").
			Where("events.organizer_id = ? AND events.status = ?", organizerID, entity.EventStatusFinished).
			Count(&stats.TotalCheckins).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Event{}).
			Where("organizer_id = ? AND status = ?", organizerID, entity.EventStatusFinished).
			Count(&stats.FinishedEvents).Error; err != nil {
			return err
		}

		score := compute(stats)
		if user.XP == score.XP && user.League == score.League && user.OrganizerRating == score.Rating {
			return nil
		}
		return tx.Model(&entity.User{}).Where("id = ?", organizerID).
			Updates(map[string]interface{}{
				"xp":               score.XP,
				"league":           score.League,
				"organizer_rating": score.Rating,
			}).Error
	})
}
