package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/photo-studio/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetForUpdate(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	// HasRole — есть ли у пользователя активная роль с кодом roleCode.
	HasRole(ctx context.Context, userID int64, roleCode string) (bool, error)
	// Permissions возвращает объединение прав всех активных ролей пользователя.
	Permissions(ctx context.Context, userID int64) ([]string, error)
	EnsureRole(ctx context.Context, code, name string, permissions []string) (*model.Role, error)
	AssignRole(ctx context.Context, userID int64, roleCode string) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) GetForUpdate(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := forUpdate(r.db.WithContext(ctx)).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	// Keep only digits; ignore formatting characters.
	b := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		c := phone[i]
		if c >= '0' && c <= '9' {
			b = append(b, c)
		}
	}
	return string(b)
}

func (r *GormUserRepository) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.ContactPhone = normalizePhone(u.ContactPhone)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GormUserRepository) HasRole(ctx context.Context, userID int64, roleCode string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Where("roles.code = ? AND roles.status = ?", roleCode, model.StatusActive).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormUserRepository) Permissions(ctx context.Context, userID int64) ([]string, error) {
	var perms []string
	err := r.db.WithContext(ctx).
		Model(&model.RolePermission{}).
		Distinct("role_permissions.permission").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Where("user_roles.user_id = ? AND roles.status = ?", userID, model.StatusActive).
		Order("role_permissions.permission ASC").
		Pluck("role_permissions.permission", &perms).Error
	return perms, err
}

func (r *GormUserRepository) EnsureRole(ctx context.Context, code, name string, permissions []string) (*model.Role, error) {
	db := r.db.WithContext(ctx)

	// ensure role exists
	var role model.Role
	if err := db.Where("code = ?", code).First(&role).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		role = model.Role{Code: code, Name: name, Status: model.StatusActive}
		if err := db.Create(&role).Error; err != nil {
			return nil, err
		}
	}

	if len(permissions) == 0 {
		return &role, nil
	}
	rows := make([]model.RolePermission, 0, len(permissions))
	for _, p := range permissions {
		rows = append(rows, model.RolePermission{RoleID: role.ID, Permission: p})
	}
	// повторный сид не дублирует права
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *GormUserRepository) AssignRole(ctx context.Context, userID int64, roleCode string) error {
	db := r.db.WithContext(ctx)
	var role model.Role
	if err := db.Where("code = ?", roleCode).First(&role).Error; err != nil {
		return err
	}
	ur := model.UserRole{RoleID: role.ID, UserID: userID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ur).Error
}
