package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/calendar"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// staffStore отдаёт пользователей репозитория в виде calendar.Staff.
// lock блокирует строку пользователя до конца транзакции: так назначения
// одного фотографа на одно время выполняются по очереди.
type staffStore struct {
	users repository.UserRepository
	lock  bool
}

func (s staffStore) FindStaff(ctx context.Context, id int64) (*calendar.Staff, error) {
	var (
		u   *model.User
		err error
	)
	if s.lock {
		u, err = s.users.GetForUpdate(ctx, id)
	} else {
		u, err = s.users.GetByID(ctx, id)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &calendar.Staff{ID: u.ID, Name: u.FullName, Active: u.Status == model.StatusActive}, nil
}

func (s staffStore) HasRole(ctx context.Context, id int64, role string) (bool, error) {
	return s.users.HasRole(ctx, id, role)
}

// validateStaff checks that id is an active user holding role.
func validateStaff(ctx context.Context, tx *repository.Store, id int64, role string, lock bool) (*calendar.Staff, error) {
	st, err := calendar.ValidateStaff(ctx, staffStore{users: tx.Users, lock: lock}, id, role)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, calendar.ErrInvalidUserID):
		return nil, apperr.InvalidArgument(role+"_id", "must be a positive user id")
	case errors.Is(err, calendar.ErrUserNotFound):
		return nil, apperr.NotFound(role, id)
	case errors.Is(err, calendar.ErrUserInactive):
		return nil, apperr.InactiveResource(role, fmt.Sprintf("%d", id))
	case errors.Is(err, calendar.ErrMissingRole):
		return nil, apperr.InvalidArgument(role+"_id", fmt.Sprintf("user %d is not a %s", id, role))
	default:
		return nil, fmt.Errorf("validate %s %d: %w", role, id, err)
	}
}
