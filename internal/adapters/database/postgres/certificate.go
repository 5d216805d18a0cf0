package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

type CertificateStorage struct {
	db *gorm.DB
}

func NewCertificateStorage(db *gorm.DB) *CertificateStorage {
	return &CertificateStorage{
		db: db,
	}
}

// GetOrCreate returns the certificate for the (event, user) pair,
// creating a code-less one if none exists. The unique composite index
// makes concurrent creations collapse onto a single row.
func (s *CertificateStorage) GetOrCreate(ctx context.Context, eventID string, userID uint) (*entity.Certificate, error) {
	certificate := entity.Certificate{EventID: eventID, UserID: userID}
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		FirstOrCreate(&certificate).Error
	if errors.Is(translateError(err), errorz.ErrAlreadyExists) {
		// Lost the creation race; the winner's row is what we want.
		return s.Get(ctx, eventID, userID)
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Get is a function that gets a certificate by its (event, user) pair.
func (s *CertificateStorage) Get(ctx context.Context, eventID string, userID uint) (*entity.Certificate, error) {
	var certificate entity.Certificate
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).First(&certificate).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &certificate, nil
}

// GetByID is a function that gets a certificate from the database by id.
func (s *CertificateStorage) GetByID(ctx context.Context, id string) (*entity.Certificate, error) {
	var certificate entity.Certificate
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&certificate).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &certificate, nil
}

// GetByCode is a function that gets a certificate by validation code,
// with the event and user needed for the public summary.
func (s *CertificateStorage) GetByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	var certificate entity.Certificate
	err := s.db.WithContext(ctx).Preload("Event").Preload("User").
		Where("validation_code = ?", code).First(&certificate).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &certificate, nil
}

// CodeExists reports whether a validation code is already taken.
func (s *CertificateStorage) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Certificate{}).
		Where("validation_code = ?", code).Count(&count).Error
	return count > 0, err
}

// ClaimCode writes the validation code and issue timestamp in one
// statement, guarded on the code still being unassigned. Returns false
// when a concurrent issuer already committed a code for this
// certificate. A duplicate-code collision surfaces as ErrAlreadyExists.
func (s *CertificateStorage) ClaimCode(ctx context.Context, id, code string, issuedAt time.Time) (bool, error) {
	result := s.db.WithContext(ctx).Model(&entity.Certificate{}).
		Where("id = ? AND validation_code IS NULL", id).
		Updates(map[string]interface{}{
			"validation_code": code,
			"issued_at":       issuedAt,
		})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetArtifactPath records where the rendered certificate artifact lives.
func (s *CertificateStorage) SetArtifactPath(ctx context.Context, id, path string) error {
	return s.db.WithContext(ctx).Model(&entity.Certificate{}).
		Where("id = ?", id).Update("artifact_path", path).Error
}
