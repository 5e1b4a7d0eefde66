package service

import (
	"fmt"
	"time"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
)

// ExplodePackage turns a package into one priced line per active member item.
// Lines carry the item's current price and the member quantity; the package
// base price is not used. Lines are returned unsaved.
func ExplodePackage(
	pkg *model.Package,
	members []model.PackageItem,
	sessionType model.SessionType,
	actor int64,
	now time.Time,
) ([]model.SessionDetail, error) {
	if len(members) == 0 {
		return nil, apperr.PackageItemsEmpty(pkg.ID)
	}
	if !pkg.SessionType.Accepts(sessionType) {
		return nil, apperr.InvalidSessionType(fmt.Sprintf(
			"package %s is for %s sessions, but session is %s", pkg.Name, pkg.SessionType, sessionType,
		))
	}

	packageID := pkg.ID
	details := make([]model.SessionDetail, 0, len(members))
	for _, m := range members {
		item := m.Item
		if item == nil || item.Status != model.StatusActive {
			continue
		}
		qty := m.Quantity
		if qty < 1 {
			return nil, apperr.InvalidArgument("quantity", fmt.Sprintf(
				"package %s lists item %s with quantity %d", pkg.Name, item.Code, qty,
			))
		}

		details = append(details, model.SessionDetail{
			LineType:        model.LineTypeItem,
			ReferenceID:     &packageID,
			ReferenceType:   model.ReferenceTypePackage,
			ItemCode:        item.Code,
			ItemName:        item.Name,
			ItemDescription: item.Description,
			Quantity:        qty,
			UnitPrice:       item.UnitPrice,
			LineSubtotal:    lineSubtotal(item.UnitPrice, qty),
			CreatedAt:       now,
			CreatedBy:       actor,
		})
	}

	if len(details) == 0 {
		return nil, apperr.PackageItemsEmpty(pkg.ID)
	}
	return details, nil
}
