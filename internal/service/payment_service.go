package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/events"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// PaymentService is the session payment ledger. Every recorded payment is
// followed by a full totals recomputation so paid and balance never drift.
type PaymentService struct {
	deps Deps
}

func NewPaymentService(deps Deps) *PaymentService {
	return &PaymentService{deps: deps.withDefaults()}
}

func (s *PaymentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.deps.Logger, "PaymentService", operation, attrs...)
}

type PaymentInput struct {
	SessionID            uuid.UUID
	PaymentType          model.PaymentType
	PaymentMethod        string
	Amount               decimal.Decimal
	PaymentDate          time.Time // нулевое значение — сегодня
	TransactionReference string
	Notes                string
}

func validatePayment(in PaymentInput, now time.Time) error {
	if !in.PaymentType.Valid() {
		return apperr.InvalidArgument("payment_type", "must be Deposit, Balance, Partial or Refund")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return apperr.InvalidArgument("payment_method", "is required")
	}
	if !in.Amount.IsPositive() {
		return apperr.InvalidArgument("amount", "must be greater than zero")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return apperr.InvalidArgument("amount", "must have at most 2 decimal places")
	}
	if !in.PaymentDate.IsZero() && model.DateOf(in.PaymentDate).After(model.DateOf(now)) {
		return apperr.InvalidArgument("payment_date", "must not be in the future")
	}
	return nil
}

// RecordPayment books a payment or a manual refund. A payment may not exceed
// the remaining balance and a refund may not exceed what was paid.
func (s *PaymentService) RecordPayment(ctx context.Context, in PaymentInput, actor int64) (payment *model.SessionPayment, err error) {
	logger := s.loggerWith(ctx, "RecordPayment",
		"actor_id", actor,
		"session_id", in.SessionID,
		"payment_type", in.PaymentType,
		"amount", in.Amount.StringFixed(2),
	)
	defer func() {
		logResult(ctx, logger, err, "payment recorded", "failed to record payment")
	}()

	now := s.deps.Clock.Now()
	if err := validatePayment(in, now); err != nil {
		return nil, err
	}
	date := in.PaymentDate
	if date.IsZero() {
		date = now
	}

	var sess *model.Session
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		cur, err := tx.Sessions.GetForUpdate(ctx, in.SessionID)
		if err != nil {
			return lookupErr(err, "session", in.SessionID)
		}
		if err := ensureOpen(cur); err != nil {
			return err
		}

		if in.PaymentType == model.PaymentTypeRefund {
			if in.Amount.GreaterThan(cur.PaidAmount) {
				return apperr.InsufficientBalance(cur.ID, in.Amount.Sub(cur.PaidAmount), "refund exceeds paid amount")
			}
		} else {
			remaining := cur.TotalAmount.Sub(cur.PaidAmount)
			if in.Amount.GreaterThan(remaining) {
				return apperr.InsufficientBalance(cur.ID, in.Amount.Sub(remaining), "payment exceeds remaining balance")
			}
		}

		p := &model.SessionPayment{
			SessionID:            cur.ID,
			PaymentType:          in.PaymentType,
			PaymentMethod:        strings.TrimSpace(in.PaymentMethod),
			Amount:               in.Amount,
			TransactionReference: in.TransactionReference,
			PaymentDate:          model.NewDate(date),
			Notes:                in.Notes,
			CreatedAt:            now,
			CreatedBy:            actor,
		}
		if err := tx.Payments.Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		cur.UpdatedAt = now
		if err := recalculate(ctx, tx, cur, s.deps.Config.DefaultDepositPercentage); err != nil {
			return err
		}
		payment = p
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.deps, logger, paymentEvent(payment, sess))
	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, sessionID uuid.UUID) ([]model.SessionPayment, error) {
	if _, err := s.deps.Store.Sessions.GetByID(ctx, sessionID); err != nil {
		return nil, lookupErr(err, "session", sessionID)
	}
	payments, err := s.deps.Store.Payments.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func paymentEvent(p *model.SessionPayment, sess *model.Session) events.PaymentRecorded {
	return events.PaymentRecorded{
		SessionID:   p.SessionID,
		PaymentID:   p.ID,
		PaymentType: p.PaymentType,
		Amount:      p.Amount,
		PaidAmount:  sess.PaidAmount,
		Balance:     sess.BalanceAmount,
		RecordedBy:  p.CreatedBy,
	}
}
