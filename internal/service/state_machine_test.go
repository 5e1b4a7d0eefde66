package service

import (
	"testing"
	"time"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/config"
	"github.com/Leganyst/photo-studio/internal/events"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/testutil"
)

func TestStateMachine_Allowed(t *testing.T) {
	m := NewStateMachine(config.DefaultBusinessConfig(), testutil.NewClock(testNow))

	for _, st := range model.AllSessionStatuses {
		allowed := m.Allowed(st)
		if st.Terminal() {
			if len(allowed) != 0 {
				t.Fatalf("%s is terminal but allows %v", st, allowed)
			}
			continue
		}
		if !m.CanTransition(st, model.SessionStatusCanceled) {
			t.Fatalf("%s must allow cancellation", st)
		}
	}

	// копия, а не внутренний срез
	allowed := m.Allowed(model.SessionStatusRequest)
	allowed[0] = model.SessionStatusCompleted
	if m.CanTransition(model.SessionStatusRequest, model.SessionStatusCompleted) {
		t.Fatal("Allowed leaked the transition table")
	}
}

// Every (from, to) pair either succeeds with exactly one history row or
// fails with INVALID_STATUS_TRANSITION and writes nothing.
func TestTransition_Closure(t *testing.T) {
	f := newFixture(t)
	m := NewStateMachine(config.DefaultBusinessConfig(), f.clock)

	for _, from := range model.AllSessionStatuses {
		for _, to := range model.AllSessionStatuses {
			s := f.rawSession(from)

			got, err := f.svc.Sessions.Transition(f.ctx, s.ID, to, f.actor, "closure", "")
			rows := f.history(s.ID)

			if m.CanTransition(from, to) {
				if err != nil {
					t.Fatalf("%s -> %s: unexpected error %v", from, to, err)
				}
				if got.Status != to || f.reload(s.ID).Status != to {
					t.Fatalf("%s -> %s: status not stored", from, to)
				}
				if len(rows) != 1 {
					t.Fatalf("%s -> %s: expected 1 history row, got %d", from, to, len(rows))
				}
				if rows[0].FromStatus == nil || *rows[0].FromStatus != from || rows[0].ToStatus != to {
					t.Fatalf("%s -> %s: wrong history row %+v", from, to, rows[0])
				}
				continue
			}

			assertCode(t, err, apperr.CodeInvalidStatusTransition)
			if len(rows) != 0 {
				t.Fatalf("%s -> %s: rejected transition wrote %d history rows", from, to, len(rows))
			}
			if f.reload(s.ID).Status != from {
				t.Fatalf("%s -> %s: rejected transition changed the status", from, to)
			}
		}
	}
}

func TestTransition_RejectionListsAllowed(t *testing.T) {
	f := newFixture(t)
	s := f.rawSession(model.SessionStatusRequest)

	_, err := f.svc.Sessions.Transition(f.ctx, s.ID, model.SessionStatusCompleted, f.actor, "", "")
	assertCode(t, err, apperr.CodeInvalidStatusTransition)

	md := apperr.GetMetadata(err)
	if md["from"] != "Request" || md["to"] != "Completed" {
		t.Fatalf("unexpected metadata: %v", md)
	}
	if md["allowed"] != "Negotiation,Pre-scheduled,Canceled" {
		t.Fatalf("unexpected allowed list: %q", md["allowed"])
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	f := newFixture(t)
	s := f.rawSession(model.SessionStatusRequest)

	_, err := f.svc.Sessions.Transition(f.ctx, s.ID, "Archived", f.actor, "", "")
	assertCode(t, err, apperr.CodeInvalidArgument)
}

func TestTransition_PreScheduledSetsDeadlines(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")

	got := f.transition(s.ID, model.SessionStatusPreScheduled)

	if got.PaymentDeadline == nil || model.FormatDate(*got.PaymentDeadline) != "2025-05-06" {
		t.Fatalf("payment deadline: %v", got.PaymentDeadline)
	}
	if got.ChangesDeadline == nil || model.FormatDate(*got.ChangesDeadline) != "2025-05-25" {
		t.Fatalf("changes deadline: %v", got.ChangesDeadline)
	}
}

func TestTransition_ChangesDeadlineNotBeforeToday(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(time.Date(2025, 5, 29, 12, 0, 0, 0, time.UTC))
	s := f.studioSession("10:00")

	got := f.transition(s.ID, model.SessionStatusPreScheduled)
	if model.FormatDate(*got.ChangesDeadline) != "2025-05-29" {
		t.Fatalf("changes deadline must be clamped to today, got %s", model.FormatDate(*got.ChangesDeadline))
	}
}

func TestTransition_ConfirmRequiresDeposit(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	f.addItem(s.ID, "PHOTO", "200.00", 1)
	f.pay(s.ID, model.PaymentTypePartial, "50.00")
	f.transition(s.ID, model.SessionStatusPreScheduled)

	_, err := f.svc.Sessions.Transition(f.ctx, s.ID, model.SessionStatusConfirmed, f.actor, "", "")
	assertCode(t, err, apperr.CodeInsufficientBalance)
	if amount := apperr.GetMetadata(err)["amount"]; amount != "50.00" {
		t.Fatalf("expected 50.00 short, got %q", amount)
	}
	if f.reload(s.ID).Status != model.SessionStatusPreScheduled {
		t.Fatal("failed confirmation changed the status")
	}

	f.pay(s.ID, model.PaymentTypeDeposit, "50.00")
	f.transition(s.ID, model.SessionStatusConfirmed)
}

func TestTransition_CompleteRequiresFullPayment(t *testing.T) {
	f := newFixture(t)
	s := f.rawSession(model.SessionStatusReadyForDelivery)
	s.TotalAmount = testutil.Money(t, "300.00")
	s.PaidAmount = testutil.Money(t, "100.00")
	s.BalanceAmount = testutil.Money(t, "200.00")
	if err := f.store.Sessions.Save(f.ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := f.svc.Sessions.Transition(f.ctx, s.ID, model.SessionStatusCompleted, f.actor, "", "")
	assertCode(t, err, apperr.CodeInsufficientBalance)
	if amount := apperr.GetMetadata(err)["amount"]; amount != "200.00" {
		t.Fatalf("expected 200.00 short, got %q", amount)
	}
}

func TestTransition_EditingTimestamps(t *testing.T) {
	f := newFixture(t)
	s := f.rawSession(model.SessionStatusAttended)

	got := f.transition(s.ID, model.SessionStatusInEditing)
	if got.EditingStartedAt == nil || !got.EditingStartedAt.Equal(testNow) {
		t.Fatalf("editing start not stamped: %v", got.EditingStartedAt)
	}
	if model.FormatDate(*got.DeliveryDeadline) != "2025-05-06" {
		t.Fatalf("delivery deadline: %s", model.FormatDate(*got.DeliveryDeadline))
	}

	f.clock.Advance(48 * time.Hour)
	got = f.transition(s.ID, model.SessionStatusReadyForDelivery)
	if got.EditingCompletedAt == nil || !got.EditingCompletedAt.Equal(testNow.Add(48*time.Hour)) {
		t.Fatalf("editing completion not stamped: %v", got.EditingCompletedAt)
	}

	got = f.transition(s.ID, model.SessionStatusCompleted)
	if got.DeliveredAt == nil {
		t.Fatal("completion must stamp delivered_at")
	}
}

func TestTransition_PublishesStatusChanged(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	f.transition(s.ID, model.SessionStatusNegotiation)

	got := f.events.OfType(events.TypeStatusChanged)
	if len(got) != 2 {
		t.Fatalf("expected create and transition events, got %d", len(got))
	}
	last := got[1].(events.StatusChanged)
	if last.SessionID != s.ID || last.ToStatus != model.SessionStatusNegotiation {
		t.Fatalf("unexpected event %+v", last)
	}
	if last.FromStatus == nil || *last.FromStatus != model.SessionStatusRequest {
		t.Fatalf("event must carry the previous status: %+v", last)
	}
}
