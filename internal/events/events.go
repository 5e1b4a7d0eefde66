// Package events describes what the session core announces after a commit
// and how those announcements leave the process.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Leganyst/photo-studio/internal/model"
)

const (
	TypeStatusChanged   = "session.status_changed"
	TypePaymentRecorded = "session.payment_recorded"
	TypeSessionCanceled = "session.canceled"
)

// Event is a domain event payload. Type doubles as the AMQP message type.
type Event interface {
	Type() string
	Session() uuid.UUID
}

type StatusChanged struct {
	SessionID  uuid.UUID            `json:"session_id"`
	FromStatus *model.SessionStatus `json:"from_status,omitempty"`
	ToStatus   model.SessionStatus  `json:"to_status"`
	Reason     string               `json:"reason,omitempty"`
	ChangedBy  int64                `json:"changed_by"`
	ChangedAt  time.Time            `json:"changed_at"`
}

func (StatusChanged) Type() string         { return TypeStatusChanged }
func (e StatusChanged) Session() uuid.UUID { return e.SessionID }

type PaymentRecorded struct {
	SessionID   uuid.UUID         `json:"session_id"`
	PaymentID   uuid.UUID         `json:"payment_id"`
	PaymentType model.PaymentType `json:"payment_type"`
	Amount      decimal.Decimal   `json:"amount"`
	PaidAmount  decimal.Decimal   `json:"paid_amount"`
	Balance     decimal.Decimal   `json:"balance_amount"`
	RecordedBy  int64             `json:"recorded_by"`
}

func (PaymentRecorded) Type() string         { return TypePaymentRecorded }
func (e PaymentRecorded) Session() uuid.UUID { return e.SessionID }

type SessionCanceled struct {
	SessionID    uuid.UUID                   `json:"session_id"`
	FromStatus   model.SessionStatus         `json:"from_status"`
	InitiatedBy  model.CancellationInitiator `json:"initiated_by"`
	Reason       string                      `json:"reason"`
	RefundAmount decimal.Decimal             `json:"refund_amount"`
	CanceledBy   int64                       `json:"canceled_by"`
	CanceledAt   time.Time                   `json:"canceled_at"`
}

func (SessionCanceled) Type() string         { return TypeSessionCanceled }
func (e SessionCanceled) Session() uuid.UUID { return e.SessionID }

// Publisher delivers events. Services call it only after the transaction commits.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, events ...Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType filters recorded events by type.
func (r *Recorder) OfType(eventType string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}
