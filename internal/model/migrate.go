package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей студии.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Role{},
		&UserRole{},
		&RolePermission{},
		&Client{},
		&Item{},
		&Package{},
		&PackageItem{},
		&Room{},
		&Session{},
		&SessionDetail{},
		&SessionPayment{},
		&SessionPhotographer{},
		&SessionStatusHistory{},
	)
}
