package service

import (
	"github.com/shopspring/decimal"

	"github.com/Leganyst/photo-studio/internal/model"
)

var half = decimal.RequireFromString("0.5")

// RefundAmount returns how much of paid goes back to the client when a
// session in the given status is canceled.
//
//	initiator | Request | Negotiation, Pre-scheduled | Confirmed and later
//	Studio    | 100%    | 100%                       | 100%
//	Client    | 100%    | 50%                        | 0%
func RefundAmount(status model.SessionStatus, initiator model.CancellationInitiator, paid decimal.Decimal) decimal.Decimal {
	if !paid.IsPositive() {
		return decimal.Zero
	}
	if initiator == model.CancellationInitiatorStudio {
		return paid.Round(2)
	}

	switch status {
	case model.SessionStatusRequest:
		return paid.Round(2)
	case model.SessionStatusNegotiation, model.SessionStatusPreScheduled:
		return paid.Mul(half).Round(2)
	default:
		return decimal.Zero
	}
}
