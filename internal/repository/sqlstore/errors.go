package sqlstore

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateTag is returned when a tag number is already taken.
	ErrDuplicateTag = errors.New("cattle with this tag number already exists")
	// ErrCattleNotFound is returned when a child record points at a missing animal.
	ErrCattleNotFound = errors.New("referenced cattle does not exist")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}

// isDuplicate covers drivers whose errors GORM cannot translate.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
