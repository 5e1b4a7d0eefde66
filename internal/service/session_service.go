package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/calendar"
	"github.com/Leganyst/photo-studio/internal/events"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// SessionService owns the session lifecycle: booking, edits, status changes
// and cancellation.
type SessionService struct {
	deps    Deps
	machine *StateMachine
}

func NewSessionService(deps Deps, machine *StateMachine) *SessionService {
	deps = deps.withDefaults()
	if machine == nil {
		machine = NewStateMachine(deps.Config, deps.Clock)
	}
	return &SessionService{deps: deps, machine: machine}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.deps.Logger, "SessionService", operation, attrs...)
}

type CreateSessionInput struct {
	ClientID               uuid.UUID
	SessionType            model.SessionType
	SessionDate            time.Time
	SessionTime            string // "HH:MM", может быть пустым
	EstimatedDurationHours *int
	Location               string
	RoomID                 *uuid.UUID
	DeliveryMethod         model.DeliveryMethod
	DeliveryAddress        string
	ClientRequirements     string
	InternalNotes          string
}

// UpdateSessionInput: nil поля не меняются.
type UpdateSessionInput struct {
	SessionDate            *time.Time
	SessionTime            *string
	EstimatedDurationHours *int
	Location               *string
	RoomID                 *uuid.UUID
	DeliveryMethod         *model.DeliveryMethod
	DeliveryAddress        *string
	ClientRequirements     *string
	InternalNotes          *string
}

type ListSessionsInput struct {
	ClientID       *uuid.UUID
	Status         *model.SessionStatus
	From, To       *time.Time
	PhotographerID *int64
	EditorID       *int64
	Page, PageSize int
}

type CancelInput struct {
	Reason      string
	InitiatedBy model.CancellationInitiator
	Notes       string
}

func validateDuration(hours *int) error {
	if hours != nil && (*hours < 1 || *hours > 24) {
		return apperr.InvalidArgument("estimated_duration_hours", "must be between 1 and 24")
	}
	return nil
}

func validateClock(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	c, err := calendar.ParseClock(raw)
	if err != nil {
		return "", apperr.InvalidArgument("session_time", err.Error())
	}
	return c, nil
}

func validateCreate(in CreateSessionInput, now time.Time) (string, error) {
	if in.ClientID == uuid.Nil {
		return "", apperr.InvalidArgument("client_id", "is required")
	}
	if !in.SessionType.ValidForSession() {
		return "", apperr.InvalidArgument("session_type", "must be Studio or External")
	}
	if in.SessionDate.IsZero() {
		return "", apperr.InvalidArgument("session_date", "is required")
	}
	if model.DateOf(in.SessionDate).Before(model.DateOf(now)) {
		return "", apperr.InvalidArgument("session_date", "must not be in the past")
	}
	clock, err := validateClock(in.SessionTime)
	if err != nil {
		return "", err
	}
	if err := validateDuration(in.EstimatedDurationHours); err != nil {
		return "", err
	}
	if in.DeliveryMethod != "" && !in.DeliveryMethod.Valid() {
		return "", apperr.InvalidArgument("delivery_method", "must be Digital, Physical or Both")
	}

	switch in.SessionType {
	case model.SessionTypeStudio:
		if in.RoomID == nil {
			return "", apperr.InvalidArgument("room_id", "is required for studio sessions")
		}
	case model.SessionTypeExternal:
		if in.RoomID != nil {
			return "", apperr.InvalidArgument("room_id", "external sessions do not use a studio room")
		}
		if strings.TrimSpace(in.Location) == "" {
			return "", apperr.InvalidArgument("location", "is required for external sessions")
		}
	}
	return clock, nil
}

// checkRoom блокирует строку зала и проверяет, что он активен и свободен
// на дату и точное время. Пустое время не проверяется.
func checkRoom(
	ctx context.Context,
	tx *repository.Store,
	roomID uuid.UUID,
	date datatypes.Date,
	clock string,
	exclude *uuid.UUID,
) error {
	room, err := tx.Catalog.GetRoomForUpdate(ctx, roomID)
	if err != nil {
		return lookupErr(err, "room", roomID)
	}
	if room.Status != model.StatusActive {
		return apperr.InactiveResource("room", room.Name)
	}
	if clock == "" {
		return nil
	}

	booked, err := tx.Sessions.RoomBooked(ctx, roomID, date, clock, exclude)
	if err != nil {
		return fmt.Errorf("check room availability: %w", err)
	}
	if booked {
		return apperr.RoomNotAvailable(roomID, model.FormatDate(date), clock)
	}
	return nil
}

// Create books a new session in the Request status.
func (s *SessionService) Create(ctx context.Context, in CreateSessionInput, actor int64) (sess *model.Session, err error) {
	logger := s.loggerWith(ctx, "Create", "actor_id", actor, "client_id", in.ClientID)
	defer func() {
		if err != nil {
			logResult(ctx, logger, err, "", "failed to create session")
			return
		}
		logger.InfoContext(ctx, "session created", "session_id", sess.ID)
	}()

	now := s.deps.Clock.Now()
	clock, err := validateCreate(in, now)
	if err != nil {
		return nil, err
	}

	var hist *model.SessionStatusHistory
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		client, err := tx.Clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return lookupErr(err, "client", in.ClientID)
		}
		if client.Status != model.StatusActive {
			return apperr.InactiveResource("client", client.FullName)
		}

		date := model.NewDate(in.SessionDate)
		if in.RoomID != nil {
			if err := checkRoom(ctx, tx, *in.RoomID, date, clock, nil); err != nil {
				return err
			}
		}

		created := &model.Session{
			ClientID:               in.ClientID,
			SessionType:            in.SessionType,
			SessionDate:            date,
			SessionTime:            clock,
			EstimatedDurationHours: in.EstimatedDurationHours,
			Location:               strings.TrimSpace(in.Location),
			RoomID:                 in.RoomID,
			Status:                 model.SessionStatusRequest,
			DeliveryMethod:         in.DeliveryMethod,
			DeliveryAddress:        in.DeliveryAddress,
			ClientRequirements:     in.ClientRequirements,
			InternalNotes:          in.InternalNotes,
			CreatedAt:              now,
			CreatedBy:              actor,
			UpdatedAt:              now,
		}
		if err := tx.Sessions.Create(ctx, created); err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		hist, err = s.machine.Start(ctx, tx, created, actor)
		if err != nil {
			return err
		}
		sess = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.deps, logger, statusEvent(hist))
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	sess, err := s.deps.Store.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "session", id)
	}
	return sess, nil
}

func listSessions(ctx context.Context, store *repository.Store, in ListSessionsInput) (calendar.Page[model.Session], error) {
	if in.Status != nil && !in.Status.Valid() {
		return calendar.Page[model.Session]{}, apperr.InvalidArgument("status", fmt.Sprintf("unknown status %q", *in.Status))
	}
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return calendar.Page[model.Session]{}, apperr.InvalidArgument("to", "must not be before from")
	}

	limit, offset, _ := calendar.Bounds(in.Page, in.PageSize)
	items, total, err := store.Sessions.List(ctx, repository.SessionFilter{
		ClientID:       in.ClientID,
		Status:         in.Status,
		From:           in.From,
		To:             in.To,
		PhotographerID: in.PhotographerID,
		EditorID:       in.EditorID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return calendar.Page[model.Session]{}, fmt.Errorf("list sessions: %w", err)
	}
	return calendar.NewPage(items, total, in.Page, in.PageSize), nil
}

// List returns one page of sessions matching every filter that is set.
func (s *SessionService) List(ctx context.Context, in ListSessionsInput) (calendar.Page[model.Session], error) {
	return listSessions(ctx, s.deps.Store, in)
}

// History returns the status log of a session, oldest first.
func (s *SessionService) History(ctx context.Context, id uuid.UUID) ([]model.SessionStatusHistory, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.deps.Store.History.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return rows, nil
}

// Update changes scheduling and free-text fields while the session is still
// editable. Room availability is re-checked against other sessions.
func (s *SessionService) Update(ctx context.Context, id uuid.UUID, in UpdateSessionInput, actor int64) (sess *model.Session, err error) {
	logger := s.loggerWith(ctx, "Update", "actor_id", actor, "session_id", id)
	defer func() {
		logResult(ctx, logger, err, "session updated", "failed to update session")
	}()

	now := s.deps.Clock.Now()
	today := model.DateOf(now)

	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		cur, err := tx.Sessions.GetForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "session", id)
		}
		if err := ensureEditable(cur, now); err != nil {
			return err
		}

		slotChanged := false
		if in.SessionDate != nil {
			if model.DateOf(*in.SessionDate).Before(today) {
				return apperr.InvalidArgument("session_date", "must not be in the past")
			}
			cur.SessionDate = model.NewDate(*in.SessionDate)
			slotChanged = true
		}
		if in.SessionTime != nil {
			clock, err := validateClock(*in.SessionTime)
			if err != nil {
				return err
			}
			cur.SessionTime = clock
			slotChanged = true
		}
		if in.RoomID != nil {
			if cur.SessionType == model.SessionTypeExternal {
				return apperr.InvalidArgument("room_id", "external sessions do not use a studio room")
			}
			cur.RoomID = in.RoomID
			slotChanged = true
		}
		if in.Location != nil {
			cur.Location = strings.TrimSpace(*in.Location)
			if cur.SessionType == model.SessionTypeExternal && cur.Location == "" {
				return apperr.InvalidArgument("location", "is required for external sessions")
			}
		}
		if in.EstimatedDurationHours != nil {
			if err := validateDuration(in.EstimatedDurationHours); err != nil {
				return err
			}
			cur.EstimatedDurationHours = in.EstimatedDurationHours
		}
		if in.DeliveryMethod != nil {
			if !in.DeliveryMethod.Valid() {
				return apperr.InvalidArgument("delivery_method", "must be Digital, Physical or Both")
			}
			cur.DeliveryMethod = *in.DeliveryMethod
		}
		if in.DeliveryAddress != nil {
			cur.DeliveryAddress = *in.DeliveryAddress
		}
		if in.ClientRequirements != nil {
			cur.ClientRequirements = *in.ClientRequirements
		}
		if in.InternalNotes != nil {
			cur.InternalNotes = *in.InternalNotes
		}

		if slotChanged && cur.RoomID != nil {
			if err := checkRoom(ctx, tx, *cur.RoomID, cur.SessionDate, cur.SessionTime, &cur.ID); err != nil {
				return err
			}
		}
		// срок изменений следует за датой съёмки
		if in.SessionDate != nil && cur.ChangesDeadline != nil {
			changes := calendar.LaterOf(calendar.AddDays(cur.Date(), -s.deps.Config.ChangesDeadlineDays), today)
			cur.ChangesDeadline = model.NewDatePtr(changes)
		}

		cur.UpdatedAt = now
		if err := tx.Sessions.Save(ctx, cur); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Transition moves a session to another status. Cancellation is routed
// through Cancel with the studio as initiator so refunds always apply.
func (s *SessionService) Transition(
	ctx context.Context,
	id uuid.UUID,
	to model.SessionStatus,
	actor int64,
	reason, notes string,
) (sess *model.Session, err error) {
	if !to.Valid() {
		return nil, apperr.InvalidArgument("to_status", fmt.Sprintf("unknown status %q", to))
	}
	if to == model.SessionStatusCanceled {
		if strings.TrimSpace(reason) == "" {
			reason = "Canceled via status change"
		}
		return s.Cancel(ctx, id, CancelInput{
			Reason:      reason,
			InitiatedBy: model.CancellationInitiatorStudio,
			Notes:       notes,
		}, actor)
	}

	logger := s.loggerWith(ctx, "Transition", "actor_id", actor, "session_id", id, "to_status", to)
	defer func() {
		logResult(ctx, logger, err, "session status changed", "failed to change session status")
	}()

	var hist *model.SessionStatusHistory
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		cur, err := tx.Sessions.GetForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "session", id)
		}
		hist, err = s.machine.Apply(ctx, tx, cur, to, actor, reason, notes)
		if err != nil {
			return err
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.deps, logger, statusEvent(hist))
	return sess, nil
}

// MarkReadyForDelivery is the editor hand-off: In Editing → Ready for Delivery.
func (s *SessionService) MarkReadyForDelivery(ctx context.Context, id uuid.UUID, actor int64, notes string) (sess *model.Session, err error) {
	logger := s.loggerWith(ctx, "MarkReadyForDelivery", "actor_id", actor, "session_id", id)
	defer func() {
		logResult(ctx, logger, err, "session ready for delivery", "failed to mark session ready")
	}()

	var hist *model.SessionStatusHistory
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		cur, err := tx.Sessions.GetForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "session", id)
		}
		if cur.Status != model.SessionStatusInEditing {
			return apperr.InvalidStatusTransition(
				string(cur.Status),
				string(model.SessionStatusReadyForDelivery),
				[]string{string(model.SessionStatusInEditing)},
			)
		}
		hist, err = s.machine.Apply(ctx, tx, cur, model.SessionStatusReadyForDelivery, actor,
			"Editor marked session as ready for delivery", notes)
		if err != nil {
			return err
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.deps, logger, statusEvent(hist))
	return sess, nil
}

// Cancel cancels an open session, books the refund owed under the refund
// rules and recomputes the totals in the same transaction.
func (s *SessionService) Cancel(ctx context.Context, id uuid.UUID, in CancelInput, actor int64) (sess *model.Session, err error) {
	logger := s.loggerWith(ctx, "Cancel", "actor_id", actor, "session_id", id, "initiated_by", in.InitiatedBy)
	defer func() {
		logResult(ctx, logger, err, "session canceled", "failed to cancel session")
	}()

	if !in.InitiatedBy.Valid() {
		return nil, apperr.InvalidArgument("initiated_by", "must be Client or Studio")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, apperr.InvalidArgument("reason", "is required")
	}

	now := s.deps.Clock.Now()
	var (
		hist     *model.SessionStatusHistory
		refund   *model.SessionPayment
		canceled events.SessionCanceled
	)
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		cur, err := tx.Sessions.GetForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "session", id)
		}
		if cur.Status.Terminal() {
			return s.machine.rejectTransition(cur.Status, model.SessionStatusCanceled)
		}

		from := cur.Status
		amount := RefundAmount(from, in.InitiatedBy, cur.PaidAmount)
		if amount.IsPositive() {
			refund = &model.SessionPayment{
				SessionID:     cur.ID,
				PaymentType:   model.PaymentTypeRefund,
				PaymentMethod: "Refund",
				Amount:        amount,
				PaymentDate:   model.NewDate(now),
				Notes:         fmt.Sprintf("Refund for cancellation. Initiated by: %s", in.InitiatedBy),
				CreatedAt:     now,
				CreatedBy:     actor,
			}
			if err := tx.Payments.Create(ctx, refund); err != nil {
				return fmt.Errorf("create refund payment: %w", err)
			}
		}

		cur.CancellationReason = reason
		cur.CancelledAt = &now
		cur.CancelledBy = &actor
		if err := recalculate(ctx, tx, cur, s.deps.Config.DefaultDepositPercentage); err != nil {
			return err
		}

		hist, err = s.machine.Apply(ctx, tx, cur, model.SessionStatusCanceled, actor,
			fmt.Sprintf("Canceled by %s: %s", in.InitiatedBy, reason), in.Notes)
		if err != nil {
			return err
		}

		canceled = events.SessionCanceled{
			SessionID:    cur.ID,
			FromStatus:   from,
			InitiatedBy:  in.InitiatedBy,
			Reason:       reason,
			RefundAmount: amount,
			CanceledBy:   actor,
			CanceledAt:   now,
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	evs := []events.Event{statusEvent(hist), canceled}
	if refund != nil {
		evs = append(evs, paymentEvent(refund, sess))
	}
	publish(ctx, s.deps, logger, evs...)
	return sess, nil
}

// RecalculateTotals recomputes the money fields from lines and payments.
// Calling it again without changes in between yields the same values.
func (s *SessionService) RecalculateTotals(ctx context.Context, id uuid.UUID) (sess *model.Session, err error) {
	logger := s.loggerWith(ctx, "RecalculateTotals", "session_id", id)
	defer func() {
		logResult(ctx, logger, err, "session totals recalculated", "failed to recalculate totals")
	}()

	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		cur, err := tx.Sessions.GetForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "session", id)
		}
		if err := recalculate(ctx, tx, cur, s.deps.Config.DefaultDepositPercentage); err != nil {
			return err
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// AssignEditor sets the editor; an Attended session moves to In Editing.
func (s *SessionService) AssignEditor(ctx context.Context, id uuid.UUID, editorID int64, actor int64) (sess *model.Session, err error) {
	logger := s.loggerWith(ctx, "AssignEditor", "actor_id", actor, "session_id", id, "editor_id", editorID)
	defer func() {
		logResult(ctx, logger, err, "editor assigned", "failed to assign editor")
	}()

	now := s.deps.Clock.Now()
	var hist *model.SessionStatusHistory
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		cur, err := tx.Sessions.GetForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "session", id)
		}
		if err := ensureOpen(cur); err != nil {
			return err
		}
		if _, err := validateStaff(ctx, tx, editorID, model.RoleEditor, false); err != nil {
			return err
		}

		cur.EditingAssignedTo = &editorID
		cur.UpdatedAt = now
		if cur.Status == model.SessionStatusAttended {
			hist, err = s.machine.Apply(ctx, tx, cur, model.SessionStatusInEditing, actor,
				"Editor assigned to session", fmt.Sprintf("Editor ID %d assigned for post-processing", editorID))
			if err != nil {
				return err
			}
		} else if err := tx.Sessions.Save(ctx, cur); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hist != nil {
		publish(ctx, s.deps, logger, statusEvent(hist))
	}
	return sess, nil
}
