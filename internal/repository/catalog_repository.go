package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/model"
)

// CatalogRepository читает справочники каталога: услуги, пакеты и залы.
type CatalogRepository interface {
	GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*model.Package, error)
	// Состав пакета вместе с услугами, в порядке отображения.
	ListPackageItems(ctx context.Context, packageID uuid.UUID) ([]model.PackageItem, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error)
	GetRoomForUpdate(ctx context.Context, id uuid.UUID) (*model.Room, error)
}

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *GormCatalogRepository) GetPackage(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	var p model.Package
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormCatalogRepository) ListPackageItems(ctx context.Context, packageID uuid.UUID) ([]model.PackageItem, error) {
	var members []model.PackageItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("package_id = ?", packageID).
		// NULL display_order в конце, на обеих СУБД
		Order("CASE WHEN display_order IS NULL THEN 1 ELSE 0 END").
		Order("display_order ASC").
		Find(&members).Error
	return members, err
}

func (r *GormCatalogRepository) GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormCatalogRepository) GetRoomForUpdate(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := forUpdate(r.db.WithContext(ctx)).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}
