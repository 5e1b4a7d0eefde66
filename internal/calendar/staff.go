package calendar

import (
	"context"
	"errors"
)

// Ошибки проверки сотрудника.
var (
	ErrInvalidUserID = errors.New("invalid user id")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserInactive  = errors.New("user is inactive")
	ErrMissingRole   = errors.New("user does not hold the required role")
)

// Staff — сотрудник студии, как его видит проверка.
type Staff struct {
	ID     int64
	Name   string
	Active bool
}

// StaffStore — источник данных о сотрудниках.
// В реале это обёртка над БД, в тестах — мок.
type StaffStore interface {
	FindStaff(ctx context.Context, id int64) (*Staff, error)
	HasRole(ctx context.Context, id int64, role string) (bool, error)
}

// ValidateStaff:
//   - проверяет корректность идентификатора;
//   - вытаскивает сотрудника из хранилища;
//   - проверяет, что он активен и имеет роль role.
func ValidateStaff(ctx context.Context, store StaffStore, id int64, role string) (*Staff, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}

	s, err := store.FindStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrUserNotFound
	}
	if !s.Active {
		return nil, ErrUserInactive
	}

	ok, err := store.HasRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMissingRole
	}
	return s, nil
}
