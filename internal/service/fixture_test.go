package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/config"
	"github.com/Leganyst/photo-studio/internal/events"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
	"github.com/Leganyst/photo-studio/internal/testutil"
)

// Тесты идут по фиксированным часам: сегодня 2025-05-01, съёмка 2025-06-01.
var (
	testNow    = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	sessionDay = testutil.Day(2025, 6, 1)
)

type fixture struct {
	t      *testing.T
	ctx    context.Context
	db     *gorm.DB
	store  *repository.Store
	clock  *testutil.Clock
	events *events.Recorder
	svc    *Services

	actor        int64
	client       *model.Client
	room         *model.Room
	photographer *model.User
	editor       *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.OpenDB(t)
	store := repository.NewStore(db)
	clock := testutil.NewClock(testNow)
	rec := &events.Recorder{}

	svc := New(Deps{
		Store:     store,
		Config:    config.DefaultBusinessConfig(),
		Clock:     clock,
		Publisher: rec,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	coordinator := testutil.SeedUser(t, db, "coord@studio.test", model.StatusActive, model.RoleCoordinator)

	return &fixture{
		t:            t,
		ctx:          context.Background(),
		db:           db,
		store:        store,
		clock:        clock,
		events:       rec,
		svc:          svc,
		actor:        coordinator.ID,
		client:       testutil.SeedClient(t, db, "anna", model.StatusActive),
		room:         testutil.SeedRoom(t, db, "Room R", model.StatusActive),
		photographer: testutil.SeedUser(t, db, "ph@studio.test", model.StatusActive, model.RolePhotographer),
		editor:       testutil.SeedUser(t, db, "ed@studio.test", model.StatusActive, model.RoleEditor),
	}
}

// studioSession books the fixture room on sessionDay at the given time.
func (f *fixture) studioSession(at string) *model.Session {
	f.t.Helper()
	s, err := f.svc.Sessions.Create(f.ctx, CreateSessionInput{
		ClientID:    f.client.ID,
		SessionType: model.SessionTypeStudio,
		SessionDate: sessionDay,
		SessionTime: at,
		RoomID:      &f.room.ID,
	}, f.actor)
	if err != nil {
		f.t.Fatalf("create session: %v", err)
	}
	return s
}

// rawSession inserts a session in any status, bypassing the services.
func (f *fixture) rawSession(st model.SessionStatus) *model.Session {
	f.t.Helper()
	s := &model.Session{
		ClientID:    f.client.ID,
		SessionType: model.SessionTypeExternal,
		SessionDate: model.NewDate(sessionDay),
		Location:    "Park",
		Status:      st,
		CreatedAt:   testNow,
		CreatedBy:   f.actor,
	}
	if err := f.store.Sessions.Create(f.ctx, s); err != nil {
		f.t.Fatalf("create raw session: %v", err)
	}
	return s
}

func (f *fixture) reload(id uuid.UUID) *model.Session {
	f.t.Helper()
	s, err := f.store.Sessions.GetByID(f.ctx, id)
	if err != nil {
		f.t.Fatalf("reload session: %v", err)
	}
	return s
}

func (f *fixture) setStatus(id uuid.UUID, st model.SessionStatus) {
	f.t.Helper()
	s := f.reload(id)
	s.Status = st
	if err := f.store.Sessions.Save(f.ctx, s); err != nil {
		f.t.Fatalf("set status: %v", err)
	}
}

func (f *fixture) history(id uuid.UUID) []model.SessionStatusHistory {
	f.t.Helper()
	rows, err := f.store.History.ListBySession(f.ctx, id)
	if err != nil {
		f.t.Fatalf("history: %v", err)
	}
	return rows
}

func (f *fixture) transition(id uuid.UUID, to model.SessionStatus) *model.Session {
	f.t.Helper()
	s, err := f.svc.Sessions.Transition(f.ctx, id, to, f.actor, "", "")
	if err != nil {
		f.t.Fatalf("transition to %s: %v", to, err)
	}
	return s
}

func (f *fixture) item(code, price string) *model.Item {
	f.t.Helper()
	return testutil.SeedItem(f.t, f.db, code, price, model.StatusActive)
}

func (f *fixture) addItem(sessionID uuid.UUID, code, price string, qty int) *model.SessionDetail {
	f.t.Helper()
	d, err := f.svc.Details.AddItem(f.ctx, sessionID, f.item(code, price).ID, qty, f.actor)
	if err != nil {
		f.t.Fatalf("add item: %v", err)
	}
	return d
}

func (f *fixture) pay(sessionID uuid.UUID, typ model.PaymentType, amount string) *model.SessionPayment {
	f.t.Helper()
	p, err := f.svc.Payments.RecordPayment(f.ctx, PaymentInput{
		SessionID:     sessionID,
		PaymentType:   typ,
		PaymentMethod: "Card",
		Amount:        testutil.Money(f.t, amount),
	}, f.actor)
	if err != nil {
		f.t.Fatalf("record %s payment: %v", typ, err)
	}
	return p
}

func assertCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := apperr.GetCode(err); got != code {
		t.Fatalf("expected %s error, got %s (%v)", code, got, err)
	}
}

func assertMoney(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: expected %s, got %s", field, want, got.StringFixed(2))
	}
}

// assertBalanced checks balance == total - paid on the stored row.
func assertBalanced(t *testing.T, s *model.Session) {
	t.Helper()
	if !s.BalanceAmount.Equal(s.TotalAmount.Sub(s.PaidAmount)) {
		t.Fatalf("balance invariant broken: total=%s paid=%s balance=%s", s.TotalAmount, s.PaidAmount, s.BalanceAmount)
	}
}
