package grpcapi

import (
	"context"
	"time"

	"github.com/Leganyst/photo-studio/internal/access"
	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/service"
)

// Server maps RPCs onto the session services. Every call is authorized
// through the gate with the actor placed in the context by the interceptor.
type Server struct {
	svc  *service.Services
	gate access.Gate
}

var _ SessionsServer = (*Server)(nil)

func NewServer(svc *service.Services, gate access.Gate) *Server {
	if gate == nil {
		gate = access.AllowAll{}
	}
	return &Server{svc: svc, gate: gate}
}

func (s *Server) authorize(ctx context.Context, permission string) (int64, error) {
	actor, _ := access.ActorFrom(ctx)
	if err := s.gate.Authorize(ctx, actor, permission); err != nil {
		return 0, err
	}
	return actor, nil
}

// ---- sessions ----

func (s *Server) CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	actor, err := s.authorize(ctx, access.PermSessionCreate)
	if err != nil {
		return nil, err
	}
	in, err := toCreateInput(req)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.Create(ctx, in, actor)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

func (s *Server) GetSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	if _, err := s.authorize(ctx, access.PermSessionViewAll); err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

func (s *Server) UpdateSession(ctx context.Context, req *UpdateSessionRequest) (*Session, error) {
	actor, err := s.authorize(ctx, access.PermSessionEditAll)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	in, err := toUpdateInput(req)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.Update(ctx, id, in, actor)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

func (s *Server) ListSessions(ctx context.Context, req *ListSessionsRequest) (*ListSessionsResponse, error) {
	if _, err := s.authorize(ctx, access.PermSessionViewAll); err != nil {
		return nil, err
	}
	in, err := toListInput(req)
	if err != nil {
		return nil, err
	}
	page, err := s.svc.Sessions.List(ctx, in)
	if err != nil {
		return nil, err
	}

	resp := &ListSessionsResponse{
		Sessions: make([]*Session, 0, len(page.Items)),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
		HasNext:  page.HasNext,
	}
	for i := range page.Items {
		resp.Sessions = append(resp.Sessions, toSession(&page.Items[i]))
	}
	return resp, nil
}

func (s *Server) GetHistory(ctx context.Context, req *SessionRequest) (*HistoryResponse, error) {
	if _, err := s.authorize(ctx, access.PermSessionViewAll); err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	rows, err := s.svc.Sessions.History(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &HistoryResponse{Entries: make([]*HistoryEntry, 0, len(rows))}
	for i := range rows {
		resp.Entries = append(resp.Entries, toHistoryEntry(&rows[i]))
	}
	return resp, nil
}

func (s *Server) TransitionSession(ctx context.Context, req *TransitionRequest) (*Session, error) {
	perm := access.PermSessionTransition
	if model.SessionStatus(req.ToStatus) == model.SessionStatusCanceled {
		perm = access.PermSessionCancel
	}
	actor, err := s.authorize(ctx, perm)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.Transition(ctx, id, model.SessionStatus(req.ToStatus), actor, req.Reason, req.Notes)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

func (s *Server) CancelSession(ctx context.Context, req *CancelSessionRequest) (*Session, error) {
	actor, err := s.authorize(ctx, access.PermSessionCancel)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.Cancel(ctx, id, service.CancelInput{
		Reason:      req.Reason,
		InitiatedBy: model.CancellationInitiator(req.InitiatedBy),
		Notes:       req.Notes,
	}, actor)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

func (s *Server) MarkReadyForDelivery(ctx context.Context, req *MarkReadyRequest) (*Session, error) {
	actor, err := s.authorize(ctx, access.PermSessionMarkReady)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.MarkReadyForDelivery(ctx, id, actor, req.Notes)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

func (s *Server) AssignEditor(ctx context.Context, req *AssignEditorRequest) (*Session, error) {
	actor, err := s.authorize(ctx, access.PermSessionAssignResources)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.AssignEditor(ctx, id, req.EditorID, actor)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

func (s *Server) RecalculateTotals(ctx context.Context, req *SessionRequest) (*Session, error) {
	if _, err := s.authorize(ctx, access.PermSessionEditAll); err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.svc.Sessions.RecalculateTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSession(sess), nil
}

// ---- details ----

func (s *Server) AddItem(ctx context.Context, req *AddItemRequest) (*Detail, error) {
	actor, err := s.authorize(ctx, access.PermSessionEditAll)
	if err != nil {
		return nil, err
	}
	sessionID, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	itemID, err := parseUUID("item_id", req.ItemID)
	if err != nil {
		return nil, err
	}
	d, err := s.svc.Details.AddItem(ctx, sessionID, itemID, req.Quantity, actor)
	if err != nil {
		return nil, err
	}
	return toDetail(d), nil
}

func (s *Server) AddPackage(ctx context.Context, req *AddPackageRequest) (*DetailsResponse, error) {
	actor, err := s.authorize(ctx, access.PermSessionEditAll)
	if err != nil {
		return nil, err
	}
	sessionID, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	packageID, err := parseUUID("package_id", req.PackageID)
	if err != nil {
		return nil, err
	}
	lines, err := s.svc.Details.AddPackage(ctx, sessionID, packageID, actor)
	if err != nil {
		return nil, err
	}
	return toDetails(lines), nil
}

func (s *Server) RemoveDetail(ctx context.Context, req *DetailRequest) (*Empty, error) {
	actor, err := s.authorize(ctx, access.PermSessionEditAll)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("detail_id", req.DetailID)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Details.RemoveDetail(ctx, id, actor); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *Server) MarkDetailDelivered(ctx context.Context, req *DetailRequest) (*Detail, error) {
	actor, err := s.authorize(ctx, access.PermSessionEditAll)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("detail_id", req.DetailID)
	if err != nil {
		return nil, err
	}
	d, err := s.svc.Details.MarkDelivered(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return toDetail(d), nil
}

func (s *Server) ListDetails(ctx context.Context, req *SessionRequest) (*DetailsResponse, error) {
	if _, err := s.authorize(ctx, access.PermSessionViewAll); err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Details.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetails(list), nil
}

// ---- payments ----

func (s *Server) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*Payment, error) {
	actor, err := s.authorize(ctx, access.PermSessionPayment)
	if err != nil {
		return nil, err
	}
	in, err := toPaymentInput(req)
	if err != nil {
		return nil, err
	}
	p, err := s.svc.Payments.RecordPayment(ctx, in, actor)
	if err != nil {
		return nil, err
	}
	return toPayment(p), nil
}

func (s *Server) ListPayments(ctx context.Context, req *SessionRequest) (*PaymentsResponse, error) {
	if _, err := s.authorize(ctx, access.PermSessionViewAll); err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Payments.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &PaymentsResponse{Payments: make([]*Payment, 0, len(list))}
	for i := range list {
		resp.Payments = append(resp.Payments, toPayment(&list[i]))
	}
	return resp, nil
}

// ---- photographers ----

func (s *Server) AssignPhotographer(ctx context.Context, req *AssignPhotographerRequest) (*Assignment, error) {
	actor, err := s.authorize(ctx, access.PermSessionAssignResources)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	a, err := s.svc.Assignments.AssignPhotographer(ctx, id, req.PhotographerID, model.PhotographerRole(req.Role), actor)
	if err != nil {
		return nil, err
	}
	return toAssignment(a), nil
}

func (s *Server) MarkAttended(ctx context.Context, req *MarkAttendedRequest) (*Assignment, error) {
	actor, err := s.authorize(ctx, access.PermSessionMarkAttended)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("assignment_id", req.AssignmentID)
	if err != nil {
		return nil, err
	}
	a, err := s.svc.Assignments.MarkAttended(ctx, id, actor, req.Notes)
	if err != nil {
		return nil, err
	}
	return toAssignment(a), nil
}

func (s *Server) RemoveAssignment(ctx context.Context, req *AssignmentRequest) (*Empty, error) {
	actor, err := s.authorize(ctx, access.PermSessionAssignResources)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID("assignment_id", req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Assignments.RemoveAssignment(ctx, id, actor); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *Server) ListPhotographers(ctx context.Context, req *SessionRequest) (*AssignmentsResponse, error) {
	if _, err := s.authorize(ctx, access.PermSessionViewAll); err != nil {
		return nil, err
	}
	id, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Assignments.ListPhotographers(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &AssignmentsResponse{Assignments: make([]*Assignment, 0, len(list))}
	for i := range list {
		resp.Assignments = append(resp.Assignments, toAssignment(&list[i]))
	}
	return resp, nil
}

// ---- dashboard ----

func (s *Server) DashboardStats(ctx context.Context, req *DashboardRequest) (*DashboardResponse, error) {
	if _, err := s.authorize(ctx, access.PermSessionViewAll); err != nil {
		return nil, err
	}
	if req.Month < 0 || req.Month > 12 {
		return nil, apperr.InvalidArgument("month", "must be between 1 and 12")
	}
	st, err := s.svc.Dashboard.Stats(ctx, req.Year, time.Month(req.Month))
	if err != nil {
		return nil, err
	}
	return toDashboard(st), nil
}
