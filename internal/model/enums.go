package model

// Статусы хранятся строковыми кодами, совпадающими с кодами в БД.

// SessionStatus is a state of the session lifecycle.
type SessionStatus string

const (
	SessionStatusRequest          SessionStatus = "Request"
	SessionStatusNegotiation      SessionStatus = "Negotiation"
	SessionStatusPreScheduled     SessionStatus = "Pre-scheduled"
	SessionStatusConfirmed        SessionStatus = "Confirmed"
	SessionStatusAssigned         SessionStatus = "Assigned"
	SessionStatusAttended         SessionStatus = "Attended"
	SessionStatusInEditing        SessionStatus = "In Editing"
	SessionStatusReadyForDelivery SessionStatus = "Ready for Delivery"
	SessionStatusCompleted        SessionStatus = "Completed"
	SessionStatusCanceled         SessionStatus = "Canceled"
)

// AllSessionStatuses lists statuses in lifecycle order.
var AllSessionStatuses = []SessionStatus{
	SessionStatusRequest,
	SessionStatusNegotiation,
	SessionStatusPreScheduled,
	SessionStatusConfirmed,
	SessionStatusAssigned,
	SessionStatusAttended,
	SessionStatusInEditing,
	SessionStatusReadyForDelivery,
	SessionStatusCompleted,
	SessionStatusCanceled,
}

// Valid reports whether s is a known status code.
func (s SessionStatus) Valid() bool {
	for _, v := range AllSessionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCanceled
}

// ClosedStatuses are excluded from availability checks and active counts.
var ClosedStatuses = []SessionStatus{SessionStatusCanceled, SessionStatusCompleted}

type SessionType string

const (
	SessionTypeStudio   SessionType = "Studio"
	SessionTypeExternal SessionType = "External"
	// SessionTypeBoth is only valid for packages.
	SessionTypeBoth SessionType = "Both"
)

func (t SessionType) ValidForSession() bool {
	return t == SessionTypeStudio || t == SessionTypeExternal
}

// Accepts reports whether a package of type t can be added to a session of type session.
func (t SessionType) Accepts(session SessionType) bool {
	return t == SessionTypeBoth || t == session
}

// Status is the general activity status of catalog entities, clients and users.
type Status string

const (
	StatusActive      Status = "Active"
	StatusInactive    Status = "Inactive"
	StatusMaintenance Status = "Maintenance" // только для залов
)

type LineType string

const (
	LineTypeItem       LineType = "Item"
	LineTypePackage    LineType = "Package"
	LineTypeAdjustment LineType = "Adjustment"
)

type ReferenceType string

const (
	ReferenceTypeItem    ReferenceType = "Item"
	ReferenceTypePackage ReferenceType = "Package"
)

type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "Deposit"
	PaymentTypeBalance PaymentType = "Balance"
	PaymentTypePartial PaymentType = "Partial"
	PaymentTypeRefund  PaymentType = "Refund"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeDeposit, PaymentTypeBalance, PaymentTypePartial, PaymentTypeRefund:
		return true
	}
	return false
}

type DeliveryMethod string

const (
	DeliveryMethodDigital  DeliveryMethod = "Digital"
	DeliveryMethodPhysical DeliveryMethod = "Physical"
	DeliveryMethodBoth     DeliveryMethod = "Both"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryMethodDigital || m == DeliveryMethodPhysical || m == DeliveryMethodBoth
}

type PhotographerRole string

const (
	PhotographerRoleLead      PhotographerRole = "Lead"
	PhotographerRoleAssistant PhotographerRole = "Assistant"
)

func (r PhotographerRole) Valid() bool {
	return r == "" || r == PhotographerRoleLead || r == PhotographerRoleAssistant
}

// CancellationInitiator says who asked for the cancellation.
type CancellationInitiator string

const (
	CancellationInitiatorClient CancellationInitiator = "Client"
	CancellationInitiatorStudio CancellationInitiator = "Studio"
)

func (c CancellationInitiator) Valid() bool {
	return c == CancellationInitiatorClient || c == CancellationInitiatorStudio
}
