package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// session_details — строки сессии. Код, название и цена копируются из каталога
// в момент продажи и больше не обновляются.
type SessionDetail struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`

	LineType      LineType      `gorm:"type:varchar(20);not null"`
	ReferenceID   *uuid.UUID    `gorm:"type:uuid"`
	ReferenceType ReferenceType `gorm:"type:varchar(20)"`

	ItemCode        string `gorm:"type:varchar(50);not null"`
	ItemName        string `gorm:"type:varchar(100);not null"`
	ItemDescription string `gorm:"type:text"`

	Quantity     int             `gorm:"not null;default:1"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineSubtotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	IsDelivered bool `gorm:"not null;default:false"`
	DeliveredAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	CreatedBy int64     `gorm:"not null"`
}

func (d *SessionDetail) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
