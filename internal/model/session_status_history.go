package model

import (
	"time"

	"github.com/google/uuid"
)

// session_status_history — журнал переходов. Записи только добавляются.
type SessionStatusHistory struct {
	// Автоинкремент задаёт порядок записей внутри одной секунды.
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`

	// nil для первой записи (создание сессии).
	FromStatus *SessionStatus `gorm:"type:varchar(50)"`
	ToStatus   SessionStatus  `gorm:"type:varchar(50);not null"`

	Reason string `gorm:"type:text"`
	Notes  string `gorm:"type:text"`

	ChangedAt time.Time `gorm:"not null;index"`
	ChangedBy int64     `gorm:"not null"`
}

func (SessionStatusHistory) TableName() string {
	return "session_status_history"
}
