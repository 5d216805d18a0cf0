package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

type CheckInStorage struct {
	db *gorm.DB
}

func NewCheckInStorage(db *gorm.DB) *CheckInStorage {
	return &CheckInStorage{
		db: db,
	}
}

// Append records one check-in against a registration. The registration
// row is locked while guard runs, so the allowance check and the append
// cannot race; the CheckIn row and the denormalized counters commit
// together or not at all.
func (s *CheckInStorage) Append(
	ctx context.Context,
	registrationID string,
	guard func(event *entity.Event, registration *entity.Registration) error,
) (*entity.CheckIn, error) {
	var checkIn entity.CheckIn
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration entity.Registration
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "registrations"}}).
			Preload("Event").
			Where("id = ?", registrationID).First(&registration).Error; err != nil {
			return translateError(err)
		}

		if err := guard(&registration.Event, &registration); err != nil {
			return err
		}

		now := time.Now()
		checkIn = entity.CheckIn{RegistrationID: registration.ID}
		if err := tx.Create(&checkIn).Error; err != nil {
			return err
		}

		registration.CheckinsCount++
		registration.CheckedIn = true
		if registration.FirstCheckinAt == nil {
			registration.FirstCheckinAt = &now
		}
		return tx.Omit(clause.Associations).Save(&registration).Error
	})
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// CountByRegistrationID is a function that counts the check-in rows of a registration.
func (s *CheckInStorage) CountByRegistrationID(ctx context.Context, registrationID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.CheckIn{}).
		Where("registration_id = ?", registrationID).Count(&count).Error
	return count, err
}
