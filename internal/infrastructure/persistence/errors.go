package persistence

import (
	"errors"

	"github.com/kioskcrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM sentinel errors to domain errors.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// deleted converts a delete result, reporting ErrNotFound when nothing matched.
func deleted(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
