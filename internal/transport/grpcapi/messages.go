package grpcapi

import "time"

// Даты передаются строками YYYY-MM-DD, деньги строками с двумя знаками.

type Empty struct{}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

type CreateSessionRequest struct {
	ClientID               string `json:"client_id"`
	SessionType            string `json:"session_type"`
	SessionDate            string `json:"session_date"`
	SessionTime            string `json:"session_time,omitempty"`
	EstimatedDurationHours *int   `json:"estimated_duration_hours,omitempty"`
	Location               string `json:"location,omitempty"`
	RoomID                 string `json:"room_id,omitempty"`
	DeliveryMethod         string `json:"delivery_method,omitempty"`
	DeliveryAddress        string `json:"delivery_address,omitempty"`
	ClientRequirements     string `json:"client_requirements,omitempty"`
	InternalNotes          string `json:"internal_notes,omitempty"`
}

// UpdateSessionRequest: absent fields stay unchanged.
type UpdateSessionRequest struct {
	SessionID              string  `json:"session_id"`
	SessionDate            *string `json:"session_date,omitempty"`
	SessionTime            *string `json:"session_time,omitempty"`
	EstimatedDurationHours *int    `json:"estimated_duration_hours,omitempty"`
	Location               *string `json:"location,omitempty"`
	RoomID                 *string `json:"room_id,omitempty"`
	DeliveryMethod         *string `json:"delivery_method,omitempty"`
	DeliveryAddress        *string `json:"delivery_address,omitempty"`
	ClientRequirements     *string `json:"client_requirements,omitempty"`
	InternalNotes          *string `json:"internal_notes,omitempty"`
}

type ListSessionsRequest struct {
	ClientID       string `json:"client_id,omitempty"`
	Status         string `json:"status,omitempty"`
	From           string `json:"from,omitempty"`
	To             string `json:"to,omitempty"`
	PhotographerID int64  `json:"photographer_id,omitempty"`
	EditorID       int64  `json:"editor_id,omitempty"`
	Page           int    `json:"page,omitempty"`
	PageSize       int    `json:"page_size,omitempty"`
}

type ListSessionsResponse struct {
	Sessions []*Session `json:"sessions"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	HasNext  bool       `json:"has_next"`
}

type TransitionRequest struct {
	SessionID string `json:"session_id"`
	ToStatus  string `json:"to_status"`
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type CancelSessionRequest struct {
	SessionID   string `json:"session_id"`
	Reason      string `json:"reason"`
	InitiatedBy string `json:"initiated_by"`
	Notes       string `json:"notes,omitempty"`
}

type MarkReadyRequest struct {
	SessionID string `json:"session_id"`
	Notes     string `json:"notes,omitempty"`
}

type AssignEditorRequest struct {
	SessionID string `json:"session_id"`
	EditorID  int64  `json:"editor_id"`
}

type AddItemRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
}

type AddPackageRequest struct {
	SessionID string `json:"session_id"`
	PackageID string `json:"package_id"`
}

type DetailRequest struct {
	DetailID string `json:"detail_id"`
}

type DetailsResponse struct {
	Details []*Detail `json:"details"`
}

type RecordPaymentRequest struct {
	SessionID            string `json:"session_id"`
	PaymentType          string `json:"payment_type"`
	PaymentMethod        string `json:"payment_method"`
	Amount               string `json:"amount"`
	PaymentDate          string `json:"payment_date,omitempty"`
	TransactionReference string `json:"transaction_reference,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

type PaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type AssignPhotographerRequest struct {
	SessionID      string `json:"session_id"`
	PhotographerID int64  `json:"photographer_id"`
	Role           string `json:"role,omitempty"`
}

type MarkAttendedRequest struct {
	AssignmentID string `json:"assignment_id"`
	Notes        string `json:"notes,omitempty"`
}

type AssignmentRequest struct {
	AssignmentID string `json:"assignment_id"`
}

type AssignmentsResponse struct {
	Assignments []*Assignment `json:"assignments"`
}

type HistoryResponse struct {
	Entries []*HistoryEntry `json:"entries"`
}

type DashboardRequest struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

type DashboardResponse struct {
	Year             int              `json:"year"`
	Month            int              `json:"month"`
	ActiveSessions   int64            `json:"active_sessions"`
	SessionsInMonth  int64            `json:"sessions_in_month"`
	PendingBalance   string           `json:"pending_balance"`
	MonthlyRevenue   string           `json:"monthly_revenue"`
	SessionsByStatus map[string]int64 `json:"sessions_by_status"`
}

type Session struct {
	ID                     string     `json:"id"`
	ClientID               string     `json:"client_id"`
	SessionType            string     `json:"session_type"`
	SessionDate            string     `json:"session_date"`
	SessionTime            string     `json:"session_time,omitempty"`
	StartsAt               *time.Time `json:"starts_at,omitempty"`
	Slot                   string     `json:"slot"`
	EstimatedDurationHours *int       `json:"estimated_duration_hours,omitempty"`
	Location               string     `json:"location,omitempty"`
	RoomID                 string     `json:"room_id,omitempty"`
	Status                 string     `json:"status"`
	TotalAmount            string     `json:"total_amount"`
	DepositAmount          string     `json:"deposit_amount"`
	BalanceAmount          string     `json:"balance_amount"`
	PaidAmount             string     `json:"paid_amount"`
	PaymentDeadline        string     `json:"payment_deadline,omitempty"`
	ChangesDeadline        string     `json:"changes_deadline,omitempty"`
	DeliveryDeadline       string     `json:"delivery_deadline,omitempty"`
	EditingAssignedTo      *int64     `json:"editing_assigned_to,omitempty"`
	DeliveryMethod         string     `json:"delivery_method,omitempty"`
	DeliveryAddress        string     `json:"delivery_address,omitempty"`
	ClientRequirements     string     `json:"client_requirements,omitempty"`
	InternalNotes          string     `json:"internal_notes,omitempty"`
	CancellationReason     string     `json:"cancellation_reason,omitempty"`
	CancelledAt            *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	CreatedBy              int64      `json:"created_by"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type Detail struct {
	ID            string     `json:"id"`
	SessionID     string     `json:"session_id"`
	LineType      string     `json:"line_type"`
	ReferenceID   string     `json:"reference_id,omitempty"`
	ReferenceType string     `json:"reference_type,omitempty"`
	ItemCode      string     `json:"item_code"`
	ItemName      string     `json:"item_name"`
	Quantity      int        `json:"quantity"`
	UnitPrice     string     `json:"unit_price"`
	LineSubtotal  string     `json:"line_subtotal"`
	IsDelivered   bool       `json:"is_delivered"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

type Payment struct {
	ID                   string `json:"id"`
	SessionID            string `json:"session_id"`
	PaymentType          string `json:"payment_type"`
	PaymentMethod        string `json:"payment_method"`
	Amount               string `json:"amount"`
	PaymentDate          string `json:"payment_date"`
	TransactionReference string `json:"transaction_reference,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

type Assignment struct {
	ID             string     `json:"id"`
	SessionID      string     `json:"session_id"`
	PhotographerID int64      `json:"photographer_id"`
	Role           string     `json:"role,omitempty"`
	AssignedAt     time.Time  `json:"assigned_at"`
	Attended       bool       `json:"attended"`
	AttendedAt     *time.Time `json:"attended_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type HistoryEntry struct {
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	Reason     string    `json:"reason,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
	ChangedBy  int64     `json:"changed_by"`
}
