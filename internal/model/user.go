package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// users — сотрудники студии. Идентификатор целочисленный: он же actor id в журналах.
type User struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName     string `gorm:"type:varchar(255)"`
	ContactPhone string `gorm:"type:varchar(32)"`

	Status Status `gorm:"type:varchar(20);not null;default:'Active';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// clients
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	FullName     string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"type:varchar(255)"`
	ContactPhone string `gorm:"type:varchar(32)"`
	ClientType   string `gorm:"type:varchar(20)"` // Individual | Institutional

	Status Status `gorm:"type:varchar(20);not null;default:'Active';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	CreatedBy int64
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
