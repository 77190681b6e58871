package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// handleDBError wraps database errors with the failing operation while keeping
// gorm sentinel errors matchable with errors.Is.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", operation, gorm.ErrRecordNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", operation, gorm.ErrDuplicatedKey)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
