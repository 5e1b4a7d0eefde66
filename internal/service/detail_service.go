package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// DetailService manages session line items. Prices are copied from the
// catalog when a line is created and never refreshed afterwards.
type DetailService struct {
	deps Deps
}

func NewDetailService(deps Deps) *DetailService {
	return &DetailService{deps: deps.withDefaults()}
}

func (s *DetailService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.deps.Logger, "DetailService", operation, attrs...)
}

// lockEditable загружает сессию с блокировкой и проверяет окно изменений.
func (s *DetailService) lockEditable(ctx context.Context, tx *repository.Store, sessionID uuid.UUID) (*model.Session, error) {
	sess, err := tx.Sessions.GetForUpdate(ctx, sessionID)
	if err != nil {
		return nil, lookupErr(err, "session", sessionID)
	}
	if err := ensureEditable(sess, s.deps.Clock.Now()); err != nil {
		return nil, err
	}
	return sess, nil
}

// AddItem adds one catalog item to the session and recomputes its totals.
func (s *DetailService) AddItem(
	ctx context.Context,
	sessionID, itemID uuid.UUID,
	quantity int,
	actor int64,
) (detail *model.SessionDetail, err error) {
	logger := s.loggerWith(ctx, "AddItem", "actor_id", actor, "session_id", sessionID, "item_id", itemID)
	defer func() {
		logResult(ctx, logger, err, "item added to session", "failed to add item")
	}()

	if quantity < 1 {
		return nil, apperr.InvalidArgument("quantity", "must be at least 1")
	}

	now := s.deps.Clock.Now()
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		sess, err := s.lockEditable(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		item, err := tx.Catalog.GetItem(ctx, itemID)
		if err != nil {
			return lookupErr(err, "item", itemID)
		}
		if item.Status != model.StatusActive {
			return apperr.InactiveResource("item", item.Name)
		}

		ref := item.ID
		d := &model.SessionDetail{
			SessionID:       sess.ID,
			LineType:        model.LineTypeItem,
			ReferenceID:     &ref,
			ReferenceType:   model.ReferenceTypeItem,
			ItemCode:        item.Code,
			ItemName:        item.Name,
			ItemDescription: item.Description,
			Quantity:        quantity,
			UnitPrice:       item.UnitPrice,
			LineSubtotal:    lineSubtotal(item.UnitPrice, quantity),
			CreatedAt:       now,
			CreatedBy:       actor,
		}
		if err := tx.Details.Create(ctx, d); err != nil {
			return fmt.Errorf("create detail: %w", err)
		}

		sess.UpdatedAt = now
		if err := recalculate(ctx, tx, sess, s.deps.Config.DefaultDepositPercentage); err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// AddPackage explodes a package into one line per active member item.
// Adding the same package twice adds its lines twice.
func (s *DetailService) AddPackage(
	ctx context.Context,
	sessionID, packageID uuid.UUID,
	actor int64,
) (details []model.SessionDetail, err error) {
	logger := s.loggerWith(ctx, "AddPackage", "actor_id", actor, "session_id", sessionID, "package_id", packageID)
	defer func() {
		logResult(ctx, logger, err, "package added to session", "failed to add package", "lines", len(details))
	}()

	now := s.deps.Clock.Now()
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		sess, err := s.lockEditable(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		pkg, err := tx.Catalog.GetPackage(ctx, packageID)
		if err != nil {
			return lookupErr(err, "package", packageID)
		}
		if pkg.Status != model.StatusActive {
			return apperr.InactiveResource("package", pkg.Name)
		}

		members, err := tx.Catalog.ListPackageItems(ctx, packageID)
		if err != nil {
			return fmt.Errorf("list package items: %w", err)
		}

		lines, err := ExplodePackage(pkg, members, sess.SessionType, actor, now)
		if err != nil {
			return err
		}
		for i := range lines {
			lines[i].SessionID = sess.ID
		}
		if err := tx.Details.CreateMany(ctx, lines); err != nil {
			return fmt.Errorf("create package details: %w", err)
		}

		sess.UpdatedAt = now
		if err := recalculate(ctx, tx, sess, s.deps.Config.DefaultDepositPercentage); err != nil {
			return err
		}
		details = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// RemoveDetail deletes a line while the session is inside its changes window.
func (s *DetailService) RemoveDetail(ctx context.Context, detailID uuid.UUID, actor int64) (err error) {
	logger := s.loggerWith(ctx, "RemoveDetail", "actor_id", actor, "detail_id", detailID)
	defer func() {
		logResult(ctx, logger, err, "detail removed", "failed to remove detail")
	}()

	now := s.deps.Clock.Now()
	return s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		d, err := tx.Details.GetByID(ctx, detailID)
		if err != nil {
			return lookupErr(err, "session detail", detailID)
		}
		sess, err := s.lockEditable(ctx, tx, d.SessionID)
		if err != nil {
			return err
		}

		if err := tx.Details.Delete(ctx, d.ID); err != nil {
			return fmt.Errorf("delete detail: %w", err)
		}
		sess.UpdatedAt = now
		return recalculate(ctx, tx, sess, s.deps.Config.DefaultDepositPercentage)
	})
}

// MarkDelivered flags a line as handed over to the client. Marking twice
// keeps the first delivery time.
func (s *DetailService) MarkDelivered(ctx context.Context, detailID uuid.UUID, actor int64) (detail *model.SessionDetail, err error) {
	logger := s.loggerWith(ctx, "MarkDelivered", "actor_id", actor, "detail_id", detailID)
	defer func() {
		logResult(ctx, logger, err, "detail delivered", "failed to mark detail delivered")
	}()

	now := s.deps.Clock.Now()
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		d, err := tx.Details.GetByID(ctx, detailID)
		if err != nil {
			return lookupErr(err, "session detail", detailID)
		}
		sess, err := tx.Sessions.GetForUpdate(ctx, d.SessionID)
		if err != nil {
			return lookupErr(err, "session", d.SessionID)
		}
		if err := ensureOpen(sess); err != nil {
			return err
		}

		if !d.IsDelivered {
			d.IsDelivered = true
			d.DeliveredAt = &now
			if err := tx.Details.MarkDelivered(ctx, d); err != nil {
				return fmt.Errorf("mark detail delivered: %w", err)
			}
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *DetailService) ListDetails(ctx context.Context, sessionID uuid.UUID) ([]model.SessionDetail, error) {
	if _, err := s.deps.Store.Sessions.GetByID(ctx, sessionID); err != nil {
		return nil, lookupErr(err, "session", sessionID)
	}
	details, err := s.deps.Store.Details.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	return details, nil
}
