package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/model"
)

// SessionFilter сужает выборку сессий. Заданные поля объединяются через AND.
type SessionFilter struct {
	ClientID       *uuid.UUID
	Status         *model.SessionStatus
	From, To       *time.Time // по дате съёмки, включительно
	PhotographerID *int64
	EditorID       *int64
	Limit, Offset  int
}

type SessionRepository interface {
	// Создать сессию.
	Create(ctx context.Context, s *model.Session) error
	// Получить сессию по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	// Получить сессию с блокировкой строки до конца транзакции.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Session, error)
	// Сохранить все поля сессии.
	Save(ctx context.Context, s *model.Session) error
	// Список по фильтру с пагинацией.
	List(ctx context.Context, f SessionFilter) ([]model.Session, int64, error)
	// Занят ли зал на дату и точное время (закрытые сессии не считаются).
	RoomBooked(ctx context.Context, roomID uuid.UUID, date datatypes.Date, at string, exclude *uuid.UUID) (bool, error)

	CountActive(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumPendingBalance(ctx context.Context) (decimal.Decimal, error)
	CountByStatus(ctx context.Context) (map[model.SessionStatus]int64, error)
}

// Реализация на GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSessionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	if err := forUpdate(r.db.WithContext(ctx)).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSessionRepository) Save(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *GormSessionRepository) List(ctx context.Context, f SessionFilter) ([]model.Session, int64, error) {
	var (
		sessions []model.Session
		total    int64
	)

	q := r.db.WithContext(ctx).Model(&model.Session{})
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("session_date >= ?", model.NewDate(*f.From))
	}
	if f.To != nil {
		q = q.Where("session_date <= ?", model.NewDate(*f.To))
	}
	if f.EditorID != nil {
		q = q.Where("editing_assigned_to = ?", *f.EditorID)
	}
	if f.PhotographerID != nil {
		sub := r.db.Model(&model.SessionPhotographer{}).
			Select("session_id").
			Where("photographer_id = ?", *f.PhotographerID)
		q = q.Where("id IN (?)", sub)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	if err := q.Order("session_date DESC").Order("session_time DESC").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *GormSessionRepository) RoomBooked(
	ctx context.Context,
	roomID uuid.UUID,
	date datatypes.Date,
	at string,
	exclude *uuid.UUID,
) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("room_id = ?", roomID).
		Where("session_date = ?", date).
		Where("session_time = ?", at).
		Where("status NOT IN ?", model.ClosedStatuses)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormSessionRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("status NOT IN ?", model.ClosedStatuses).
		Count(&n).Error
	return n, err
}

func (r *GormSessionRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

func (r *GormSessionRepository) SumPendingBalance(ctx context.Context) (decimal.Decimal, error) {
	var balances []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("status NOT IN ?", model.ClosedStatuses).
		Pluck("balance_amount", &balances).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, balances...), nil
}

func (r *GormSessionRepository) CountByStatus(ctx context.Context) (map[model.SessionStatus]int64, error) {
	var rows []struct {
		Status model.SessionStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[model.SessionStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
