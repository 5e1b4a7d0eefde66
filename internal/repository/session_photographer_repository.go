package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/model"
)

type SessionPhotographerRepository interface {
	Create(ctx context.Context, a *model.SessionPhotographer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SessionPhotographer, error)
	GetBySessionAndPhotographer(ctx context.Context, sessionID uuid.UUID, photographerID int64) (*model.SessionPhotographer, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionPhotographer, error)
	Save(ctx context.Context, a *model.SessionPhotographer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Назначен ли фотограф на другую незакрытую сессию с той же датой и точным временем.
	PhotographerBooked(ctx context.Context, photographerID int64, date datatypes.Date, at string) (bool, error)
}

type GormSessionPhotographerRepository struct {
	db *gorm.DB
}

func NewGormSessionPhotographerRepository(db *gorm.DB) *GormSessionPhotographerRepository {
	return &GormSessionPhotographerRepository{db: db}
}

func (r *GormSessionPhotographerRepository) Create(ctx context.Context, a *model.SessionPhotographer) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *GormSessionPhotographerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SessionPhotographer, error) {
	var a model.SessionPhotographer
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormSessionPhotographerRepository) GetBySessionAndPhotographer(
	ctx context.Context,
	sessionID uuid.UUID,
	photographerID int64,
) (*model.SessionPhotographer, error) {
	var a model.SessionPhotographer
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND photographer_id = ?", sessionID, photographerID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormSessionPhotographerRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionPhotographer, error) {
	var list []model.SessionPhotographer
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("assigned_at ASC").
		Find(&list).Error
	return list, err
}

func (r *GormSessionPhotographerRepository) Save(ctx context.Context, a *model.SessionPhotographer) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *GormSessionPhotographerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SessionPhotographer{}, "id = ?", id).Error
}

func (r *GormSessionPhotographerRepository) PhotographerBooked(
	ctx context.Context,
	photographerID int64,
	date datatypes.Date,
	at string,
) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.SessionPhotographer{}).
		Joins("JOIN sessions ON sessions.id = session_photographers.session_id").
		Where("session_photographers.photographer_id = ?", photographerID).
		Where("sessions.session_date = ?", date).
		Where("sessions.session_time = ?", at).
		Where("sessions.status NOT IN ?", model.ClosedStatuses).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
