package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/config"
	"github.com/Leganyst/photo-studio/internal/events"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// Deps — общие зависимости сервисов сессий.
type Deps struct {
	Store     *repository.Store
	Config    config.BusinessConfig
	Clock     Clock
	Publisher events.Publisher
	Logger    *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.Publisher == nil {
		d.Publisher = events.Nop{}
	}
	d.Logger = defaultLogger(d.Logger)
	return d
}

// Services wires every session service around one shared StateMachine.
type Services struct {
	Machine     *StateMachine
	Sessions    *SessionService
	Details     *DetailService
	Payments    *PaymentService
	Assignments *AssignmentService
	Dashboard   *DashboardService
}

func New(deps Deps) *Services {
	deps = deps.withDefaults()
	machine := NewStateMachine(deps.Config, deps.Clock)
	return &Services{
		Machine:     machine,
		Sessions:    NewSessionService(deps, machine),
		Details:     NewDetailService(deps),
		Payments:    NewPaymentService(deps),
		Assignments: NewAssignmentService(deps, machine),
		Dashboard:   NewDashboardService(deps),
	}
}

// publish отправляет события после коммита. Ошибка брокера не отменяет
// уже закоммиченную операцию, поэтому только логируется.
func publish(ctx context.Context, d Deps, logger *slog.Logger, evs ...events.Event) {
	if len(evs) == 0 {
		return
	}
	if err := d.Publisher.Publish(ctx, evs...); err != nil {
		logger.WarnContext(ctx, "failed to publish events", "error", err, "count", len(evs))
	}
}

func ensureOpen(s *model.Session) error {
	if s.Status.Terminal() {
		return apperr.SessionClosed(s.ID, string(s.Status))
	}
	return nil
}

// ensureEditable — открыта ли сессия и не прошёл ли срок изменений.
func ensureEditable(s *model.Session, now time.Time) error {
	if err := ensureOpen(s); err != nil {
		return err
	}
	if !s.EditableOn(now) {
		return apperr.SessionNotEditable(s.ID, model.FormatDate(*s.ChangesDeadline))
	}
	return nil
}
