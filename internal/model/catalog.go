package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// items — отдельная услуга каталога (фото, альбом, видео).
type Item struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	ItemType    string          `gorm:"type:varchar(50)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitMeasure string          `gorm:"type:varchar(20)"`

	Status Status `gorm:"type:varchar(20);not null;default:'Active';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	CreatedBy int64
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// packages — набор услуг. BasePrice справочная, строки сессии считаются по ценам услуг.
type Package struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Code                 string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                 string          `gorm:"type:varchar(100);not null"`
	Description          string          `gorm:"type:text"`
	SessionType          SessionType     `gorm:"type:varchar(20);not null"`
	BasePrice            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EstimatedEditingDays int             `gorm:"not null;default:5"`

	Status Status `gorm:"type:varchar(20);not null;default:'Active';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	CreatedBy int64
}

func (p *Package) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// package_items — состав пакета (составной PK).
type PackageItem struct {
	PackageID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity     int       `gorm:"not null;default:1;check:quantity > 0"`
	DisplayOrder *int

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// rooms — залы студии.
type Room struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name        string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string           `gorm:"type:text"`
	Capacity    *int             `gorm:"type:integer"`
	HourlyRate  *decimal.Decimal `gorm:"type:decimal(10,2)"`

	Status Status `gorm:"type:varchar(20);not null;default:'Active';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
