package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/calendar"
	"github.com/Leganyst/photo-studio/internal/config"
	"github.com/Leganyst/photo-studio/internal/events"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// transitions — допустимые переходы. Completed и Canceled терминальные.
var transitions = map[model.SessionStatus][]model.SessionStatus{
	model.SessionStatusRequest:          {model.SessionStatusNegotiation, model.SessionStatusPreScheduled, model.SessionStatusCanceled},
	model.SessionStatusNegotiation:      {model.SessionStatusPreScheduled, model.SessionStatusCanceled},
	model.SessionStatusPreScheduled:     {model.SessionStatusConfirmed, model.SessionStatusCanceled},
	model.SessionStatusConfirmed:        {model.SessionStatusAssigned, model.SessionStatusCanceled},
	model.SessionStatusAssigned:         {model.SessionStatusAttended, model.SessionStatusCanceled},
	model.SessionStatusAttended:         {model.SessionStatusInEditing, model.SessionStatusCanceled},
	model.SessionStatusInEditing:        {model.SessionStatusReadyForDelivery, model.SessionStatusCanceled},
	model.SessionStatusReadyForDelivery: {model.SessionStatusCompleted, model.SessionStatusCanceled},
	model.SessionStatusCompleted:        {},
	model.SessionStatusCanceled:         {},
}

// StateMachine validates status changes, applies their side effects and
// writes the history row. It never opens transactions itself: callers pass
// the transaction-bound store so the status, its side effects and the history
// row commit together.
type StateMachine struct {
	cfg   config.BusinessConfig
	clock Clock
}

func NewStateMachine(cfg config.BusinessConfig, clock Clock) *StateMachine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StateMachine{cfg: cfg, clock: clock}
}

// Allowed returns the statuses reachable from from in one step.
func (m *StateMachine) Allowed(from model.SessionStatus) []model.SessionStatus {
	next := transitions[from]
	out := make([]model.SessionStatus, len(next))
	copy(out, next)
	return out
}

func (m *StateMachine) CanTransition(from, to model.SessionStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (m *StateMachine) rejectTransition(from, to model.SessionStatus) error {
	allowed := m.Allowed(from)
	names := make([]string, 0, len(allowed))
	for _, s := range allowed {
		names = append(names, string(s))
	}
	return apperr.InvalidStatusTransition(string(from), string(to), names)
}

// Apply moves s to the status to inside tx. On any error nothing is written
// by Apply; the caller rolls the transaction back.
func (m *StateMachine) Apply(
	ctx context.Context,
	tx *repository.Store,
	s *model.Session,
	to model.SessionStatus,
	actor int64,
	reason, notes string,
) (*model.SessionStatusHistory, error) {
	if !m.CanTransition(s.Status, to) {
		return nil, m.rejectTransition(s.Status, to)
	}

	now := m.clock.Now()
	if err := m.applySideEffects(s, to, now); err != nil {
		return nil, err
	}

	from := s.Status
	s.Status = to
	s.UpdatedAt = now
	if err := tx.Sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session status: %w", err)
	}

	return m.record(ctx, tx, s.ID, &from, to, actor, reason, notes, now)
}

// Start writes the first history row of a freshly created session.
func (m *StateMachine) Start(ctx context.Context, tx *repository.Store, s *model.Session, actor int64) (*model.SessionStatusHistory, error) {
	return m.record(ctx, tx, s.ID, nil, s.Status, actor, "Session created", "", m.clock.Now())
}

func (m *StateMachine) record(
	ctx context.Context,
	tx *repository.Store,
	sessionID uuid.UUID,
	from *model.SessionStatus,
	to model.SessionStatus,
	actor int64,
	reason, notes string,
	at time.Time,
) (*model.SessionStatusHistory, error) {
	h := &model.SessionStatusHistory{
		SessionID:  sessionID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		Notes:      notes,
		ChangedAt:  at,
		ChangedBy:  actor,
	}
	if err := tx.History.Append(ctx, h); err != nil {
		return nil, fmt.Errorf("append status history: %w", err)
	}
	return h, nil
}

// applySideEffects проверяет предусловия целевого статуса и только потом меняет поля.
func (m *StateMachine) applySideEffects(s *model.Session, to model.SessionStatus, now time.Time) error {
	today := model.DateOf(now)

	switch to {
	case model.SessionStatusPreScheduled:
		s.PaymentDeadline = model.NewDatePtr(calendar.AddDays(today, m.cfg.PaymentDeadlineDays))
		// не раньше сегодняшнего дня, даже если до съёмки меньше недели
		changes := calendar.LaterOf(calendar.AddDays(s.Date(), -m.cfg.ChangesDeadlineDays), today)
		s.ChangesDeadline = model.NewDatePtr(changes)

	case model.SessionStatusConfirmed:
		if s.PaidAmount.LessThan(s.DepositAmount) {
			return apperr.InsufficientBalance(s.ID, s.DepositAmount.Sub(s.PaidAmount), "deposit is not paid")
		}

	case model.SessionStatusInEditing:
		s.DeliveryDeadline = model.NewDatePtr(calendar.AddDays(today, m.cfg.DefaultEditingDays))
		if s.EditingStartedAt == nil {
			s.EditingStartedAt = &now
		}

	case model.SessionStatusReadyForDelivery:
		if s.EditingCompletedAt == nil {
			s.EditingCompletedAt = &now
		}

	case model.SessionStatusCompleted:
		if s.PaidAmount.LessThan(s.TotalAmount) {
			return apperr.InsufficientBalance(s.ID, s.TotalAmount.Sub(s.PaidAmount), "session is not fully paid")
		}
		if s.DeliveredAt == nil {
			s.DeliveredAt = &now
		}
	}
	return nil
}

// statusEvent turns a history row into the event published after commit.
func statusEvent(h *model.SessionStatusHistory) events.StatusChanged {
	return events.StatusChanged{
		SessionID:  h.SessionID,
		FromStatus: h.FromStatus,
		ToStatus:   h.ToStatus,
		Reason:     h.Reason,
		ChangedBy:  h.ChangedBy,
		ChangedAt:  h.ChangedAt,
	}
}
