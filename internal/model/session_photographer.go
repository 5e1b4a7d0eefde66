package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// session_photographers — назначение фотографа на сессию.
type SessionPhotographer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_session_photographer"`
	PhotographerID int64     `gorm:"not null;index;uniqueIndex:idx_session_photographer"`

	Role       PhotographerRole `gorm:"type:varchar(50)"`
	AssignedAt time.Time        `gorm:"not null"`
	AssignedBy int64            `gorm:"not null"`

	Attended   bool `gorm:"not null;default:false"`
	AttendedAt *time.Time
	Notes      string `gorm:"type:text"`
}

func (a *SessionPhotographer) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
