package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
)

// translateError maps gorm errors onto domain error kinds. Requires the
// connection to be opened with TranslateError enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorz.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errorz.ErrAlreadyExists
	default:
		return err
	}
}
