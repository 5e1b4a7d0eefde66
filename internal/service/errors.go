package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/apperr"
)

// lookupErr переводит "запись не найдена" в доменную ошибку, остальное оборачивает.
func lookupErr(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource, id)
	}
	return fmt.Errorf("load %s %v: %w", resource, id, err)
}
