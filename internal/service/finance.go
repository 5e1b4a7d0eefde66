package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

var hundred = decimal.NewFromInt(100)

// Totals are the derived money fields of a session.
type Totals struct {
	Total   decimal.Decimal
	Deposit decimal.Decimal
	Balance decimal.Decimal
	Paid    decimal.Decimal
}

// ComputeTotals derives session money fields from its lines and payments.
// Balance is what the client still owes, so it is taken from net payments,
// not from the deposit.
func ComputeTotals(details []model.SessionDetail, payments []model.SessionPayment, depositPercentage int) Totals {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.LineSubtotal)
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.IsRefund() {
			paid = paid.Sub(p.Amount)
			continue
		}
		paid = paid.Add(p.Amount)
	}

	total = total.Round(2)
	paid = paid.Round(2)
	deposit := total.Mul(decimal.NewFromInt(int64(depositPercentage))).Div(hundred).Round(2)

	return Totals{
		Total:   total,
		Deposit: deposit,
		Balance: total.Sub(paid),
		Paid:    paid,
	}
}

// ApplyTo writes the totals into the session row fields.
func (t Totals) ApplyTo(s *model.Session) {
	s.TotalAmount = t.Total
	s.DepositAmount = t.Deposit
	s.BalanceAmount = t.Balance
	s.PaidAmount = t.Paid
}

func lineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// recalculate пересчитывает итоги сессии внутри транзакции tx и сохраняет строку.
func recalculate(ctx context.Context, tx *repository.Store, s *model.Session, depositPercentage int) error {
	details, err := tx.Details.ListBySession(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("list details: %w", err)
	}
	payments, err := tx.Payments.ListBySession(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	ComputeTotals(details, payments, depositPercentage).ApplyTo(s)
	if err := tx.Sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("save session totals: %w", err)
	}
	return nil
}
