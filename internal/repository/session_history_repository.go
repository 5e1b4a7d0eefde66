package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/model"
)

// SessionStatusHistoryRepository only appends and reads: history rows are never updated.
type SessionStatusHistoryRepository interface {
	Append(ctx context.Context, h *model.SessionStatusHistory) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionStatusHistory, error)
}

type GormSessionStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormSessionStatusHistoryRepository(db *gorm.DB) *GormSessionStatusHistoryRepository {
	return &GormSessionStatusHistoryRepository{db: db}
}

func (r *GormSessionStatusHistoryRepository) Append(ctx context.Context, h *model.SessionStatusHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *GormSessionStatusHistoryRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionStatusHistory, error) {
	var rows []model.SessionStatusHistory
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
