package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/calendar"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// AssignmentService assigns photographers to sessions and tracks attendance.
// Status changes it causes go through the shared StateMachine.
type AssignmentService struct {
	deps    Deps
	machine *StateMachine
}

func NewAssignmentService(deps Deps, machine *StateMachine) *AssignmentService {
	deps = deps.withDefaults()
	if machine == nil {
		machine = NewStateMachine(deps.Config, deps.Clock)
	}
	return &AssignmentService{deps: deps, machine: machine}
}

func (s *AssignmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.deps.Logger, "AssignmentService", operation, attrs...)
}

// AssignPhotographer adds a photographer to a session. A Confirmed session
// moves to Assigned.
func (s *AssignmentService) AssignPhotographer(
	ctx context.Context,
	sessionID uuid.UUID,
	photographerID int64,
	role model.PhotographerRole,
	actor int64,
) (assignment *model.SessionPhotographer, err error) {
	logger := s.loggerWith(ctx, "AssignPhotographer",
		"actor_id", actor,
		"session_id", sessionID,
		"photographer_id", photographerID,
	)
	defer func() {
		logResult(ctx, logger, err, "photographer assigned", "failed to assign photographer")
	}()

	if !role.Valid() {
		return nil, apperr.InvalidArgument("role", "must be Lead or Assistant")
	}

	now := s.deps.Clock.Now()
	var hist *model.SessionStatusHistory
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		sess, err := tx.Sessions.GetForUpdate(ctx, sessionID)
		if err != nil {
			return lookupErr(err, "session", sessionID)
		}
		if err := ensureOpen(sess); err != nil {
			return err
		}
		// строка фотографа блокируется: проверка занятости и вставка идут без гонки
		if _, err := validateStaff(ctx, tx, photographerID, model.RolePhotographer, true); err != nil {
			return err
		}

		_, err = tx.Photographers.GetBySessionAndPhotographer(ctx, sessionID, photographerID)
		switch {
		case err == nil:
			return apperr.AlreadyAssigned(photographerID, sessionID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("load assignment: %w", err)
		}

		if sess.SessionTime != "" {
			booked, err := tx.Photographers.PhotographerBooked(ctx, photographerID, sess.SessionDate, sess.SessionTime)
			if err != nil {
				return fmt.Errorf("check photographer availability: %w", err)
			}
			if booked {
				return apperr.PhotographerNotAvailable(photographerID, model.FormatDate(sess.SessionDate), sess.SessionTime)
			}
		}

		a := &model.SessionPhotographer{
			SessionID:      sess.ID,
			PhotographerID: photographerID,
			Role:           role,
			AssignedAt:     now,
			AssignedBy:     actor,
		}
		if err := tx.Photographers.Create(ctx, a); err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}

		if sess.Status == model.SessionStatusConfirmed {
			hist, err = s.machine.Apply(ctx, tx, sess, model.SessionStatusAssigned, actor,
				"Photographer assigned to session",
				fmt.Sprintf("Photographer ID %d assigned for photography", photographerID))
			if err != nil {
				return err
			}
		}
		assignment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hist != nil {
		publish(ctx, s.deps, logger, statusEvent(hist))
	}
	return assignment, nil
}

// MarkAttended records that the photographer showed up. Once every
// photographer of an Assigned session attended, the session moves to
// Attended. The assignment just marked guarantees at least one row.
func (s *AssignmentService) MarkAttended(
	ctx context.Context,
	assignmentID uuid.UUID,
	actor int64,
	notes string,
) (assignment *model.SessionPhotographer, err error) {
	logger := s.loggerWith(ctx, "MarkAttended", "actor_id", actor, "assignment_id", assignmentID)
	defer func() {
		logResult(ctx, logger, err, "photographer attended", "failed to mark attendance")
	}()

	now := s.deps.Clock.Now()
	var hist *model.SessionStatusHistory
	err = s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		a, err := tx.Photographers.GetByID(ctx, assignmentID)
		if err != nil {
			return lookupErr(err, "photographer assignment", assignmentID)
		}
		sess, err := tx.Sessions.GetForUpdate(ctx, a.SessionID)
		if err != nil {
			return lookupErr(err, "session", a.SessionID)
		}
		if err := ensureOpen(sess); err != nil {
			return err
		}

		if !a.Attended {
			a.Attended = true
			a.AttendedAt = &now
		}
		if notes != "" {
			a.Notes = notes
		}
		if err := tx.Photographers.Save(ctx, a); err != nil {
			return fmt.Errorf("save assignment: %w", err)
		}

		if sess.Status != model.SessionStatusAssigned {
			assignment = a
			return nil
		}

		all, err := tx.Photographers.ListBySession(ctx, sess.ID)
		if err != nil {
			return fmt.Errorf("list assignments: %w", err)
		}
		if allAttended(all) {
			hist, err = s.machine.Apply(ctx, tx, sess, model.SessionStatusAttended, actor,
				"All photographers marked as attended", notes)
			if err != nil {
				return err
			}
		}
		assignment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hist != nil {
		publish(ctx, s.deps, logger, statusEvent(hist))
	}
	return assignment, nil
}

func allAttended(list []model.SessionPhotographer) bool {
	if len(list) == 0 {
		return false
	}
	for _, a := range list {
		if !a.Attended {
			return false
		}
	}
	return true
}

// RemoveAssignment unassigns a photographer who has not attended yet.
func (s *AssignmentService) RemoveAssignment(ctx context.Context, assignmentID uuid.UUID, actor int64) (err error) {
	logger := s.loggerWith(ctx, "RemoveAssignment", "actor_id", actor, "assignment_id", assignmentID)
	defer func() {
		logResult(ctx, logger, err, "assignment removed", "failed to remove assignment")
	}()

	return s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		a, err := tx.Photographers.GetByID(ctx, assignmentID)
		if err != nil {
			return lookupErr(err, "photographer assignment", assignmentID)
		}
		sess, err := tx.Sessions.GetForUpdate(ctx, a.SessionID)
		if err != nil {
			return lookupErr(err, "session", a.SessionID)
		}
		if err := ensureOpen(sess); err != nil {
			return err
		}
		if a.Attended {
			return apperr.InvalidArgument("assignment_id", "attended assignments cannot be removed")
		}
		if err := tx.Photographers.Delete(ctx, a.ID); err != nil {
			return fmt.Errorf("delete assignment: %w", err)
		}
		return nil
	})
}

func (s *AssignmentService) ListPhotographers(ctx context.Context, sessionID uuid.UUID) ([]model.SessionPhotographer, error) {
	if _, err := s.deps.Store.Sessions.GetByID(ctx, sessionID); err != nil {
		return nil, lookupErr(err, "session", sessionID)
	}
	list, err := s.deps.Store.Photographers.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return list, nil
}

// ListPhotographerSessions — сессии, на которые назначен фотограф.
func (s *AssignmentService) ListPhotographerSessions(
	ctx context.Context,
	photographerID int64,
	in ListSessionsInput,
) (calendar.Page[model.Session], error) {
	in.PhotographerID = &photographerID
	return listSessions(ctx, s.deps.Store, in)
}

// ListEditorSessions — сессии, назначенные редактору.
func (s *AssignmentService) ListEditorSessions(
	ctx context.Context,
	editorID int64,
	in ListSessionsInput,
) (calendar.Page[model.Session], error) {
	in.EditorID = &editorID
	return listSessions(ctx, s.deps.Store, in)
}
