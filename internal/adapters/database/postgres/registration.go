package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

type RegistrationStorage struct {
	db *gorm.DB
}

func NewRegistrationStorage(db *gorm.DB) *RegistrationStorage {
	return &RegistrationStorage{
		db: db,
	}
}

// Admit creates a registration after the decide callback accepts it.
// The event row is locked for the whole transaction so two concurrent
// registrations cannot both pass the capacity check for the last seat.
// decide receives the fresh event, the current capacity-consuming count
// and whether the (event, user) pair is already registered; it is
// expected to set the registration status before returning nil.
func (s *RegistrationStorage) Admit(
	ctx context.Context,
	registration *entity.Registration,
	decide func(event *entity.Event, activeCount int64, alreadyRegistered bool) error,
) (*entity.Registration, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event entity.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", registration.EventID).First(&event).Error; err != nil {
			return translateError(err)
		}

		var duplicates int64
		if err := tx.Model(&entity.Registration{}).
			Where("event_id = ? AND user_id = ?", registration.EventID, registration.UserID).
			Count(&duplicates).Error; err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&entity.Registration{}).
			Where("event_id = ? AND status IN ?", registration.EventID, entity.CapacityConsumingStatuses).
			Count(&active).Error; err != nil {
			return err
		}

		if err := decide(&event, active, duplicates > 0); err != nil {
			return err
		}
		return tx.Create(registration).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return registration, nil
}

// Get is a function that gets a registration from the database by id.
func (s *RegistrationStorage) Get(ctx context.Context, id string) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).Preload("Event").Where("id = ?", id).First(&registration).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &registration, nil
}

// GetByEventAndUser is a function that gets a registration by its unique (event, user) pair.
func (s *RegistrationStorage) GetByEventAndUser(ctx context.Context, eventID string, userID uint) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).Preload("Event").
		Where("event_id = ? AND user_id = ?", eventID, userID).First(&registration).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &registration, nil
}

// GetByEventID is a function that gets all registrations for an event, with their users.
func (s *RegistrationStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.Registration, error) {
	var registrations []entity.Registration
	err := s.db.WithContext(ctx).Preload("User").
		Where("event_id = ?", eventID).Order("created_at").Find(&registrations).Error
	return registrations, err
}

// CountActiveByEventID counts the capacity-consuming registrations of an event.
func (s *RegistrationStorage) CountActiveByEventID(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).
		Where("event_id = ? AND status IN ?", eventID, entity.CapacityConsumingStatuses).
		Count(&count).Error
	return count, err
}

// UpdateGuarded locks the registration row, loads its event, runs apply
// and persists the result in one transaction.
func (s *RegistrationStorage) UpdateGuarded(ctx context.Context, id string, apply func(registration *entity.Registration) error) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "registrations"}}).
			Preload("Event").
			Where("id = ?", id).First(&registration).Error; err != nil {
			return translateError(err)
		}
		if err := apply(&registration); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&registration).Error
	})
	if err != nil {
		return nil, err
	}
	return &registration, nil
}
