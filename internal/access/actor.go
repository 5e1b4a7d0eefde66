package access

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

type actorKey struct{}

// WithActor returns a context carrying the authenticated user id.
func WithActor(ctx context.Context, actor int64) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom extracts the user id placed by WithActor.
func ActorFrom(ctx context.Context) (int64, bool) {
	actor, ok := ctx.Value(actorKey{}).(int64)
	return actor, ok && actor > 0
}

// ValidateActor:
//   - проверяет корректность идентификатора;
//   - вытаскивает пользователя из хранилища;
//   - проверяет статус (активен / нет).
func ValidateActor(ctx context.Context, users repository.UserRepository, actor int64) (*model.User, error) {
	if actor <= 0 {
		return nil, apperr.Unauthenticated("actor id is required")
	}
	u, err := users.GetByID(ctx, actor)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthenticated("unknown actor")
	}
	if err != nil {
		return nil, err
	}
	if u.Status != model.StatusActive {
		return nil, apperr.PermissionDenied("active account")
	}
	return u, nil
}
