package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/testutil"
)

func TestAddItem(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")

	d := f.addItem(s.ID, "PHOTO", "100.00", 2)
	if d.ReferenceType != model.ReferenceTypeItem || d.LineType != model.LineTypeItem {
		t.Fatalf("unexpected line kind %s/%s", d.LineType, d.ReferenceType)
	}
	assertMoney(t, "subtotal", d.LineSubtotal, "200.00")

	got := f.reload(s.ID)
	assertMoney(t, "total", got.TotalAmount, "200.00")
	assertMoney(t, "deposit", got.DepositAmount, "100.00")
	assertMoney(t, "balance", got.BalanceAmount, "200.00")
	assertBalanced(t, got)
}

func TestAddItem_Rejections(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	old := testutil.SeedItem(t, f.db, "OLD", "10.00", model.StatusInactive)
	ok := f.item("OK", "10.00")

	_, err := f.svc.Details.AddItem(f.ctx, s.ID, ok.ID, 0, f.actor)
	assertCode(t, err, apperr.CodeInvalidArgument)

	_, err = f.svc.Details.AddItem(f.ctx, s.ID, old.ID, 1, f.actor)
	assertCode(t, err, apperr.CodeInactiveResource)

	_, err = f.svc.Details.AddItem(f.ctx, s.ID, uuid.New(), 1, f.actor)
	assertCode(t, err, apperr.CodeNotFound)

	_, err = f.svc.Details.AddItem(f.ctx, uuid.New(), ok.ID, 1, f.actor)
	assertCode(t, err, apperr.CodeNotFound)
}

func TestAddPackage_TwiceDoublesLines(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	prints := f.item("PRINT", "10.00")
	album := f.item("ALBUM", "250.00")
	video := testutil.SeedItem(t, f.db, "VIDEO", "400.00", model.StatusInactive)
	pkg := testutil.SeedPackage(t, f.db, "WED", model.SessionTypeStudio,
		testutil.Member{Item: prints, Quantity: 3},
		testutil.Member{Item: album, Quantity: 1},
		testutil.Member{Item: video, Quantity: 1},
	)

	lines, err := f.svc.Details.AddPackage(f.ctx, s.ID, pkg.ID, f.actor)
	if err != nil {
		t.Fatalf("add package: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if _, err := f.svc.Details.AddPackage(f.ctx, s.ID, pkg.ID, f.actor); err != nil {
		t.Fatalf("add package again: %v", err)
	}

	details, err := f.svc.Details.ListDetails(f.ctx, s.ID)
	if err != nil {
		t.Fatalf("list details: %v", err)
	}
	if len(details) != 4 {
		t.Fatalf("expected 4 lines after adding twice, got %d", len(details))
	}
	for _, d := range details {
		if d.ReferenceID == nil || *d.ReferenceID != pkg.ID || d.ReferenceType != model.ReferenceTypePackage {
			t.Fatalf("line %s must reference the package", d.ItemCode)
		}
	}

	// цена пакета 999 не участвует: 2 * (3*10 + 250)
	assertMoney(t, "total", f.reload(s.ID).TotalAmount, "560.00")
}

func TestAddPackage_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	it := f.item("PHOTO", "100.00")
	pkg := testutil.SeedPackage(t, f.db, "P", model.SessionTypeBoth, testutil.Member{Item: it, Quantity: 1})

	if _, err := f.svc.Details.AddPackage(f.ctx, s.ID, pkg.ID, f.actor); err != nil {
		t.Fatalf("add package: %v", err)
	}
	if err := f.db.Model(it).Update("unit_price", testutil.Money(t, "150.00")).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}

	got, err := f.svc.Sessions.RecalculateTotals(f.ctx, s.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	assertMoney(t, "total", got.TotalAmount, "100.00")
}

func TestAddPackage_Rejections(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	it := f.item("PHOTO", "100.00")

	external := testutil.SeedPackage(t, f.db, "EXT", model.SessionTypeExternal, testutil.Member{Item: it, Quantity: 1})
	_, err := f.svc.Details.AddPackage(f.ctx, s.ID, external.ID, f.actor)
	assertCode(t, err, apperr.CodeInvalidSessionType)

	empty := testutil.SeedPackage(t, f.db, "EMPTY", model.SessionTypeStudio)
	_, err = f.svc.Details.AddPackage(f.ctx, s.ID, empty.ID, f.actor)
	assertCode(t, err, apperr.CodePackageItemsEmpty)

	_, err = f.svc.Details.AddPackage(f.ctx, s.ID, uuid.New(), f.actor)
	assertCode(t, err, apperr.CodeNotFound)

	if n := len(mustDetails(t, f, s.ID)); n != 0 {
		t.Fatalf("failed additions left %d lines", n)
	}
}

func TestRemoveDetail(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	keep := f.addItem(s.ID, "A", "100.00", 1)
	drop := f.addItem(s.ID, "B", "40.00", 1)

	if err := f.svc.Details.RemoveDetail(f.ctx, drop.ID, f.actor); err != nil {
		t.Fatalf("remove: %v", err)
	}

	details := mustDetails(t, f, s.ID)
	if len(details) != 1 || details[0].ID != keep.ID {
		t.Fatalf("wrong lines left: %+v", details)
	}
	assertMoney(t, "total", f.reload(s.ID).TotalAmount, "100.00")

	assertCode(t, f.svc.Details.RemoveDetail(f.ctx, drop.ID, f.actor), apperr.CodeNotFound)
}

func TestDetails_NotEditableAfterDeadline(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	d := f.addItem(s.ID, "A", "100.00", 1)
	f.transition(s.ID, model.SessionStatusPreScheduled)

	// 2025-05-25 ещё можно
	f.clock.Set(time.Date(2025, 5, 25, 20, 0, 0, 0, time.UTC))
	f.addItem(s.ID, "B", "10.00", 1)

	f.clock.Set(time.Date(2025, 5, 26, 8, 0, 0, 0, time.UTC))
	_, err := f.svc.Details.AddItem(f.ctx, s.ID, f.item("C", "10.00").ID, 1, f.actor)
	assertCode(t, err, apperr.CodeSessionNotEditable)
	if dl := apperr.GetMetadata(err)["changes_deadline"]; dl != "2025-05-25" {
		t.Fatalf("expected deadline in metadata, got %q", dl)
	}

	assertCode(t, f.svc.Details.RemoveDetail(f.ctx, d.ID, f.actor), apperr.CodeSessionNotEditable)
}

func TestDetails_ClosedSession(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	d := f.addItem(s.ID, "A", "100.00", 1)
	if _, err := f.svc.Sessions.Cancel(f.ctx, s.ID, CancelInput{Reason: "x", InitiatedBy: model.CancellationInitiatorClient}, f.actor); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := f.svc.Details.AddItem(f.ctx, s.ID, f.item("B", "1.00").ID, 1, f.actor)
	assertCode(t, err, apperr.CodeSessionClosed)

	_, err = f.svc.Details.MarkDelivered(f.ctx, d.ID, f.actor)
	assertCode(t, err, apperr.CodeSessionClosed)
}

func TestMarkDelivered_Idempotent(t *testing.T) {
	f := newFixture(t)
	s := f.studioSession("14:00")
	d := f.addItem(s.ID, "A", "100.00", 1)

	first, err := f.svc.Details.MarkDelivered(f.ctx, d.ID, f.actor)
	if err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if !first.IsDelivered || first.DeliveredAt == nil {
		t.Fatalf("line not delivered: %+v", first)
	}

	f.clock.Advance(time.Hour)
	second, err := f.svc.Details.MarkDelivered(f.ctx, d.ID, f.actor)
	if err != nil {
		t.Fatalf("mark delivered again: %v", err)
	}
	if !second.DeliveredAt.Equal(*first.DeliveredAt) {
		t.Fatalf("second call moved delivered_at: %v -> %v", first.DeliveredAt, second.DeliveredAt)
	}
}

func mustDetails(t *testing.T, f *fixture, sessionID uuid.UUID) []model.SessionDetail {
	t.Helper()
	details, err := f.svc.Details.ListDetails(f.ctx, sessionID)
	if err != nil {
		t.Fatalf("list details: %v", err)
	}
	return details
}
