package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/model"
)

type SessionDetailRepository interface {
	Create(ctx context.Context, d *model.SessionDetail) error
	// Создать несколько строк одним запросом (разворачивание пакета).
	CreateMany(ctx context.Context, details []model.SessionDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SessionDetail, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionDetail, error)
	// Отметить строку выданной клиенту. Остальные поля не меняются.
	MarkDelivered(ctx context.Context, d *model.SessionDetail) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormSessionDetailRepository struct {
	db *gorm.DB
}

func NewGormSessionDetailRepository(db *gorm.DB) *GormSessionDetailRepository {
	return &GormSessionDetailRepository{db: db}
}

func (r *GormSessionDetailRepository) Create(ctx context.Context, d *model.SessionDetail) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *GormSessionDetailRepository) CreateMany(ctx context.Context, details []model.SessionDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *GormSessionDetailRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SessionDetail, error) {
	var d model.SessionDetail
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormSessionDetailRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionDetail, error) {
	var details []model.SessionDetail
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&details).Error
	return details, err
}

func (r *GormSessionDetailRepository) MarkDelivered(ctx context.Context, d *model.SessionDetail) error {
	return r.db.WithContext(ctx).
		Model(&model.SessionDetail{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"is_delivered": d.IsDelivered,
			"delivered_at": d.DeliveredAt,
		}).Error
}

func (r *GormSessionDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SessionDetail{}, "id = ?", id).Error
}
