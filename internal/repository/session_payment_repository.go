package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/model"
)

type SessionPaymentRepository interface {
	Create(ctx context.Context, p *model.SessionPayment) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionPayment, error)
	// Платежи с датой в полуинтервале [from, to).
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.SessionPayment, error)
}

type GormSessionPaymentRepository struct {
	db *gorm.DB
}

func NewGormSessionPaymentRepository(db *gorm.DB) *GormSessionPaymentRepository {
	return &GormSessionPaymentRepository{db: db}
}

func (r *GormSessionPaymentRepository) Create(ctx context.Context, p *model.SessionPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormSessionPaymentRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionPayment, error) {
	var payments []model.SessionPayment
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("payment_date ASC").
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *GormSessionPaymentRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.SessionPayment, error) {
	var payments []model.SessionPayment
	err := r.db.WithContext(ctx).
		Where("payment_date >= ? AND payment_date < ?", model.NewDate(from), model.NewDate(to)).
		Find(&payments).Error
	return payments, err
}
