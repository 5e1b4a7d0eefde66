// Package testutil holds fixtures shared by package tests: an in-memory
// SQLite database, seeders for reference data and a controllable clock.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// OpenDB opens a migrated in-memory SQLite database. One connection only:
// every new connection to ":memory:" would see an empty database.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Money parses a decimal literal and fails the test on bad input.
func Money(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad money literal %q: %v", s, err)
	}
	return d
}

func create(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}

func SeedClient(t testing.TB, db *gorm.DB, name string, status model.Status) *model.Client {
	t.Helper()
	c := &model.Client{FullName: name, Email: name + "@example.com", ClientType: "Individual", Status: status}
	create(t, db, c)
	return c
}

func SeedItem(t testing.TB, db *gorm.DB, code, price string, status model.Status) *model.Item {
	t.Helper()
	it := &model.Item{
		Code:        code,
		Name:        "Item " + code,
		Description: "catalog item " + code,
		UnitPrice:   Money(t, price),
		UnitMeasure: "unit",
		Status:      status,
	}
	create(t, db, it)
	return it
}

// Member is one package line for SeedPackage.
type Member struct {
	Item     *model.Item
	Quantity int
}

func SeedPackage(t testing.TB, db *gorm.DB, code string, sessionType model.SessionType, members ...Member) *model.Package {
	t.Helper()
	p := &model.Package{
		Code:        code,
		Name:        "Package " + code,
		SessionType: sessionType,
		BasePrice:   Money(t, "999.00"),
		Status:      model.StatusActive,
	}
	create(t, db, p)
	for i, m := range members {
		order := i + 1
		create(t, db, &model.PackageItem{PackageID: p.ID, ItemID: m.Item.ID, Quantity: m.Quantity, DisplayOrder: &order})
	}
	return p
}

func SeedRoom(t testing.TB, db *gorm.DB, name string, status model.Status) *model.Room {
	t.Helper()
	r := &model.Room{Name: name, Status: status}
	create(t, db, r)
	return r
}

// SeedUser creates a user and grants the given roles (roles are created on
// demand without permissions).
func SeedUser(t testing.TB, db *gorm.DB, email string, status model.Status, roles ...string) *model.User {
	t.Helper()
	users := repository.NewGormUserRepository(db)
	u := &model.User{Email: email, FullName: email, Status: status}
	create(t, db, u)
	for _, code := range roles {
		if _, err := users.EnsureRole(t.Context(), code, code, nil); err != nil {
			t.Fatalf("ensure role %s: %v", code, err)
		}
		if err := users.AssignRole(t.Context(), u.ID, code); err != nil {
			t.Fatalf("assign role %s: %v", code, err)
		}
	}
	return u
}
