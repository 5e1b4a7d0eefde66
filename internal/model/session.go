package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// sessions — фотосессия (бронирование), корень агрегата.
type Session struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`

	SessionType            SessionType    `gorm:"type:varchar(20);not null"`
	SessionDate            datatypes.Date `gorm:"type:date;not null;index:idx_sessions_slot"`
	SessionTime            string         `gorm:"type:varchar(10);index:idx_sessions_slot"` // "HH:MM", пусто если не задано
	EstimatedDurationHours *int           `gorm:"type:integer"`
	Location               string         `gorm:"type:text"`

	RoomID *uuid.UUID `gorm:"type:uuid;index"`

	Status SessionStatus `gorm:"type:varchar(50);not null;index"`

	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DepositAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BalanceAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	// Сроки вычисляются машиной состояний, пользователь их не задаёт.
	PaymentDeadline  *datatypes.Date `gorm:"type:date"`
	ChangesDeadline  *datatypes.Date `gorm:"type:date"`
	DeliveryDeadline *datatypes.Date `gorm:"type:date"`

	EditingAssignedTo  *int64 `gorm:"index"`
	EditingStartedAt   *time.Time
	EditingCompletedAt *time.Time

	DeliveryMethod  DeliveryMethod `gorm:"type:varchar(50)"`
	DeliveryAddress string         `gorm:"type:text"`
	DeliveredAt     *time.Time

	ClientRequirements string `gorm:"type:text"`
	InternalNotes      string `gorm:"type:text"`

	CancellationReason string `gorm:"type:text"`
	CancelledAt        *time.Time
	CancelledBy        *int64

	CreatedAt time.Time `gorm:"not null"`
	CreatedBy int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Date returns the scheduled calendar day.
func (s *Session) Date() time.Time {
	return time.Time(s.SessionDate)
}

// EditableOn reports whether line items may still change on the given day.
func (s *Session) EditableOn(day time.Time) bool {
	if s.ChangesDeadline == nil {
		return true
	}
	return !DateOf(day).After(time.Time(*s.ChangesDeadline))
}
