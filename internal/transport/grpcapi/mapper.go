package grpcapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/calendar"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/service"
)

func parseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.InvalidArgument(field, "must be a valid uuid")
	}
	return id, nil
}

func parseOptionalUUID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseUUID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, apperr.InvalidArgument(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperr.InvalidArgument(field, "must be a decimal amount")
	}
	return d, nil
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func dateString(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return model.FormatDate(*d)
}

func toCreateInput(req *CreateSessionRequest) (service.CreateSessionInput, error) {
	clientID, err := parseUUID("client_id", req.ClientID)
	if err != nil {
		return service.CreateSessionInput{}, err
	}
	day, err := parseDate("session_date", req.SessionDate)
	if err != nil {
		return service.CreateSessionInput{}, err
	}
	roomID, err := parseOptionalUUID("room_id", req.RoomID)
	if err != nil {
		return service.CreateSessionInput{}, err
	}
	return service.CreateSessionInput{
		ClientID:               clientID,
		SessionType:            model.SessionType(req.SessionType),
		SessionDate:            day,
		SessionTime:            req.SessionTime,
		EstimatedDurationHours: req.EstimatedDurationHours,
		Location:               req.Location,
		RoomID:                 roomID,
		DeliveryMethod:         model.DeliveryMethod(req.DeliveryMethod),
		DeliveryAddress:        req.DeliveryAddress,
		ClientRequirements:     req.ClientRequirements,
		InternalNotes:          req.InternalNotes,
	}, nil
}

func toUpdateInput(req *UpdateSessionRequest) (service.UpdateSessionInput, error) {
	in := service.UpdateSessionInput{
		SessionTime:            req.SessionTime,
		EstimatedDurationHours: req.EstimatedDurationHours,
		Location:               req.Location,
		DeliveryAddress:        req.DeliveryAddress,
		ClientRequirements:     req.ClientRequirements,
		InternalNotes:          req.InternalNotes,
	}
	if req.SessionDate != nil {
		day, err := parseDate("session_date", *req.SessionDate)
		if err != nil {
			return in, err
		}
		in.SessionDate = &day
	}
	if req.RoomID != nil {
		id, err := parseUUID("room_id", *req.RoomID)
		if err != nil {
			return in, err
		}
		in.RoomID = &id
	}
	if req.DeliveryMethod != nil {
		m := model.DeliveryMethod(*req.DeliveryMethod)
		in.DeliveryMethod = &m
	}
	return in, nil
}

func toListInput(req *ListSessionsRequest) (service.ListSessionsInput, error) {
	in := service.ListSessionsInput{Page: req.Page, PageSize: req.PageSize}

	var err error
	if in.ClientID, err = parseOptionalUUID("client_id", req.ClientID); err != nil {
		return in, err
	}
	if in.From, err = parseOptionalDate("from", req.From); err != nil {
		return in, err
	}
	if in.To, err = parseOptionalDate("to", req.To); err != nil {
		return in, err
	}
	if req.Status != "" {
		st := model.SessionStatus(req.Status)
		in.Status = &st
	}
	if req.PhotographerID != 0 {
		in.PhotographerID = &req.PhotographerID
	}
	if req.EditorID != 0 {
		in.EditorID = &req.EditorID
	}
	return in, nil
}

func toPaymentInput(req *RecordPaymentRequest) (service.PaymentInput, error) {
	sessionID, err := parseUUID("session_id", req.SessionID)
	if err != nil {
		return service.PaymentInput{}, err
	}
	amount, err := parseMoney("amount", req.Amount)
	if err != nil {
		return service.PaymentInput{}, err
	}
	in := service.PaymentInput{
		SessionID:            sessionID,
		PaymentType:          model.PaymentType(req.PaymentType),
		PaymentMethod:        req.PaymentMethod,
		Amount:               amount,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
	}
	if req.PaymentDate != "" {
		if in.PaymentDate, err = parseDate("payment_date", req.PaymentDate); err != nil {
			return service.PaymentInput{}, err
		}
	}
	return in, nil
}

func toSession(s *model.Session) *Session {
	out := &Session{
		ID:                     s.ID.String(),
		ClientID:               s.ClientID.String(),
		SessionType:            string(s.SessionType),
		SessionDate:            model.FormatDate(s.SessionDate),
		SessionTime:            s.SessionTime,
		Slot:                   calendar.FormatSessionSlot(s.Date(), s.SessionTime),
		EstimatedDurationHours: s.EstimatedDurationHours,
		Location:               s.Location,
		Status:                 string(s.Status),
		TotalAmount:            money(s.TotalAmount),
		DepositAmount:          money(s.DepositAmount),
		BalanceAmount:          money(s.BalanceAmount),
		PaidAmount:             money(s.PaidAmount),
		PaymentDeadline:        dateString(s.PaymentDeadline),
		ChangesDeadline:        dateString(s.ChangesDeadline),
		DeliveryDeadline:       dateString(s.DeliveryDeadline),
		EditingAssignedTo:      s.EditingAssignedTo,
		DeliveryMethod:         string(s.DeliveryMethod),
		DeliveryAddress:        s.DeliveryAddress,
		ClientRequirements:     s.ClientRequirements,
		InternalNotes:          s.InternalNotes,
		CancellationReason:     s.CancellationReason,
		CancelledAt:            s.CancelledAt,
		CreatedAt:              s.CreatedAt,
		CreatedBy:              s.CreatedBy,
		UpdatedAt:              s.UpdatedAt,
	}
	if s.RoomID != nil {
		out.RoomID = s.RoomID.String()
	}
	if s.SessionTime != "" {
		if at, err := calendar.At(s.Date(), s.SessionTime); err == nil {
			out.StartsAt = &at
		}
	}
	return out
}

func toDetail(d *model.SessionDetail) *Detail {
	out := &Detail{
		ID:            d.ID.String(),
		SessionID:     d.SessionID.String(),
		LineType:      string(d.LineType),
		ReferenceType: string(d.ReferenceType),
		ItemCode:      d.ItemCode,
		ItemName:      d.ItemName,
		Quantity:      d.Quantity,
		UnitPrice:     money(d.UnitPrice),
		LineSubtotal:  money(d.LineSubtotal),
		IsDelivered:   d.IsDelivered,
		DeliveredAt:   d.DeliveredAt,
	}
	if d.ReferenceID != nil {
		out.ReferenceID = d.ReferenceID.String()
	}
	return out
}

func toDetails(list []model.SessionDetail) *DetailsResponse {
	resp := &DetailsResponse{Details: make([]*Detail, 0, len(list))}
	for i := range list {
		resp.Details = append(resp.Details, toDetail(&list[i]))
	}
	return resp
}

func toPayment(p *model.SessionPayment) *Payment {
	return &Payment{
		ID:                   p.ID.String(),
		SessionID:            p.SessionID.String(),
		PaymentType:          string(p.PaymentType),
		PaymentMethod:        p.PaymentMethod,
		Amount:               money(p.Amount),
		PaymentDate:          model.FormatDate(p.PaymentDate),
		TransactionReference: p.TransactionReference,
		Notes:                p.Notes,
	}
}

func toAssignment(a *model.SessionPhotographer) *Assignment {
	return &Assignment{
		ID:             a.ID.String(),
		SessionID:      a.SessionID.String(),
		PhotographerID: a.PhotographerID,
		Role:           string(a.Role),
		AssignedAt:     a.AssignedAt,
		Attended:       a.Attended,
		AttendedAt:     a.AttendedAt,
		Notes:          a.Notes,
	}
}

func toHistoryEntry(h *model.SessionStatusHistory) *HistoryEntry {
	out := &HistoryEntry{
		ToStatus:  string(h.ToStatus),
		Reason:    h.Reason,
		Notes:     h.Notes,
		ChangedAt: h.ChangedAt,
		ChangedBy: h.ChangedBy,
	}
	if h.FromStatus != nil {
		out.FromStatus = string(*h.FromStatus)
	}
	return out
}

func toDashboard(st *service.DashboardStats) *DashboardResponse {
	byStatus := make(map[string]int64, len(st.SessionsByStatus))
	for k, v := range st.SessionsByStatus {
		byStatus[string(k)] = v
	}
	return &DashboardResponse{
		Year:             st.Year,
		Month:            int(st.Month),
		ActiveSessions:   st.ActiveSessions,
		SessionsInMonth:  st.SessionsInMonth,
		PendingBalance:   money(st.PendingBalance),
		MonthlyRevenue:   money(st.MonthlyRevenue),
		SessionsByStatus: byStatus,
	}
}
