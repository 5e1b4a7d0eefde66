package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// session_payments — движение денег по сессии. Сумма всегда положительна,
// возврат отличается только типом.
type SessionPayment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`

	PaymentType   PaymentType     `gorm:"type:varchar(20);not null;index"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	TransactionReference string         `gorm:"type:varchar(100)"`
	PaymentDate          datatypes.Date `gorm:"type:date;not null;index"`
	Notes                string         `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	CreatedBy int64     `gorm:"not null"`
}

func (p *SessionPayment) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsRefund reports whether the payment returns money to the client.
func (p *SessionPayment) IsRefund() bool {
	return p.PaymentType == PaymentTypeRefund
}
