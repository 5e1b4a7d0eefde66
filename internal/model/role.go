package model

// Коды ролей, которые проверяет ядро при назначении персонала.
const (
	RoleAdmin        = "admin"
	RoleCoordinator  = "coordinator"
	RolePhotographer = "photographer"
	RoleEditor       = "editor"
)

// roles
type Role struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Code string `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(255)"`

	Status Status `gorm:"type:varchar(20);not null;default:'Active'"`
}

// user_roles — связывает пользователей и роли (комбинированный PK)
type UserRole struct {
	RoleID int64 `gorm:"primaryKey;index"`
	UserID int64 `gorm:"primaryKey;index"`

	Role *Role `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// role_permissions — коды прав роли ("session.create", "session.cancel", ...).
type RolePermission struct {
	RoleID     int64  `gorm:"primaryKey"`
	Permission string `gorm:"type:varchar(64);primaryKey"`

	Role *Role `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
