package service

import (
	"testing"
	"time"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)

	a := f.studioSession("10:00")
	f.addItem(a.ID, "A", "300.00", 1)
	f.pay(a.ID, model.PaymentTypeDeposit, "100.00")

	b := f.studioSession("12:00")
	f.addItem(b.ID, "B", "200.00", 1)
	f.pay(b.ID, model.PaymentTypeDeposit, "200.00")
	if _, err := f.svc.Sessions.Cancel(f.ctx, b.ID, CancelInput{Reason: "x", InitiatedBy: model.CancellationInitiatorClient}, f.actor); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	stats, err := f.svc.Dashboard.Stats(f.ctx, 0, 0)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Year != 2025 || stats.Month != time.May {
		t.Fatalf("zero period must mean the current month, got %d-%d", stats.Year, stats.Month)
	}
	if stats.ActiveSessions != 1 || stats.SessionsInMonth != 2 {
		t.Fatalf("unexpected counts: active=%d month=%d", stats.ActiveSessions, stats.SessionsInMonth)
	}
	// у отменённой сессии остаток 200, но она закрыта
	assertMoney(t, "pending", stats.PendingBalance, "200.00")
	// 100 + 200 - 200 возврат
	assertMoney(t, "revenue", stats.MonthlyRevenue, "100.00")
	if stats.SessionsByStatus[model.SessionStatusCanceled] != 1 || stats.SessionsByStatus[model.SessionStatusRequest] != 1 {
		t.Fatalf("unexpected status counts: %v", stats.SessionsByStatus)
	}

	june, err := f.svc.Dashboard.Stats(f.ctx, 2025, time.June)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if june.SessionsInMonth != 0 || !june.MonthlyRevenue.IsZero() {
		t.Fatalf("june must be empty: %+v", june)
	}

	_, err = f.svc.Dashboard.Stats(f.ctx, 2025, 13)
	assertCode(t, err, apperr.CodeInvalidArgument)
}
