package service

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/testutil"
)

func member(t *testing.T, code, price string, qty int, status model.Status) model.PackageItem {
	return model.PackageItem{
		ItemID:   uuid.New(),
		Quantity: qty,
		Item: &model.Item{
			Code:      code,
			Name:      "Item " + code,
			UnitPrice: testutil.Money(t, price),
			Status:    status,
		},
	}
}

func TestExplodePackage(t *testing.T) {
	pkg := &model.Package{ID: uuid.New(), Name: "Wedding", SessionType: model.SessionTypeStudio}
	members := []model.PackageItem{
		member(t, "PRINT", "10.00", 3, model.StatusActive),
		member(t, "ALBUM", "250.00", 1, model.StatusActive),
		member(t, "VIDEO", "400.00", 1, model.StatusInactive),
	}

	lines, err := ExplodePackage(pkg, members, model.SessionTypeStudio, 7, testNow)
	if err != nil {
		t.Fatalf("explode: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines (inactive item skipped), got %d", len(lines))
	}

	first := lines[0]
	if first.ItemCode != "PRINT" || first.Quantity != 3 {
		t.Fatalf("unexpected first line: %+v", first)
	}
	assertMoney(t, "unit price", first.UnitPrice, "10.00")
	assertMoney(t, "subtotal", first.LineSubtotal, "30.00")
	if first.LineType != model.LineTypeItem || first.ReferenceType != model.ReferenceTypePackage {
		t.Fatalf("unexpected line kind: %s/%s", first.LineType, first.ReferenceType)
	}
	if first.ReferenceID == nil || *first.ReferenceID != pkg.ID {
		t.Fatalf("line must reference the package")
	}
	if first.CreatedBy != 7 || !first.CreatedAt.Equal(testNow) {
		t.Fatalf("audit fields not set: %+v", first)
	}
}

func TestExplodePackage_BothAcceptsAnySessionType(t *testing.T) {
	pkg := &model.Package{ID: uuid.New(), Name: "Any", SessionType: model.SessionTypeBoth}
	members := []model.PackageItem{member(t, "PHOTO", "100.00", 0, model.StatusActive)}

	for _, st := range []model.SessionType{model.SessionTypeStudio, model.SessionTypeExternal} {
		lines, err := ExplodePackage(pkg, members, st, 1, testNow)
		if err != nil {
			t.Fatalf("%s: %v", st, err)
		}
		if lines[0].Quantity != 1 {
			t.Fatalf("zero quantity should become 1, got %d", lines[0].Quantity)
		}
	}
}

func TestExplodePackage_Errors(t *testing.T) {
	studio := &model.Package{ID: uuid.New(), Name: "Studio only", SessionType: model.SessionTypeStudio}

	_, err := ExplodePackage(studio, nil, model.SessionTypeStudio, 1, testNow)
	assertCode(t, err, apperr.CodePackageItemsEmpty)

	active := []model.PackageItem{member(t, "PHOTO", "100.00", 1, model.StatusActive)}
	_, err = ExplodePackage(studio, active, model.SessionTypeExternal, 1, testNow)
	assertCode(t, err, apperr.CodeInvalidSessionType)

	inactive := []model.PackageItem{member(t, "OLD", "100.00", 1, model.StatusInactive)}
	_, err = ExplodePackage(studio, inactive, model.SessionTypeStudio, 1, testNow)
	assertCode(t, err, apperr.CodePackageItemsEmpty)
}

func TestExplodePackage_RejectsNonPositiveQuantity(t *testing.T) {
	pkg := &model.Package{ID: uuid.New(), Name: "Broken", SessionType: model.SessionTypeBoth}
	for _, qty := range []int{0, -2} {
		members := []model.PackageItem{
			member(t, "PHOTO", "100.00", 1, model.StatusActive),
			member(t, "PRINT", "10.00", qty, model.StatusActive),
		}
		got, err := ExplodePackage(pkg, members, model.SessionTypeStudio, 1, testNow)
		assertCode(t, err, apperr.CodeInvalidArgument)
		if got != nil {
			t.Fatalf("quantity %d: expected no lines, got %d", qty, len(got))
		}
	}
}
