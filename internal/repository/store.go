package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store собирает репозитории поверх одного *gorm.DB (соединения или транзакции).
type Store struct {
	db *gorm.DB

	Sessions      SessionRepository
	Details       SessionDetailRepository
	Payments      SessionPaymentRepository
	Photographers SessionPhotographerRepository
	History       SessionStatusHistoryRepository
	Catalog       CatalogRepository
	Clients       ClientRepository
	Users         UserRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Sessions:      NewGormSessionRepository(db),
		Details:       NewGormSessionDetailRepository(db),
		Payments:      NewGormSessionPaymentRepository(db),
		Photographers: NewGormSessionPhotographerRepository(db),
		History:       NewGormSessionStatusHistoryRepository(db),
		Catalog:       NewGormCatalogRepository(db),
		Clients:       NewGormClientRepository(db),
		Users:         NewGormUserRepository(db),
	}
}

// Transaction runs fn inside one database transaction. Every repository of the
// store passed to fn shares that transaction; returning an error rolls it back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// forUpdate добавляет SELECT ... FOR UPDATE (SQLite клауза игнорируется драйвером).
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
