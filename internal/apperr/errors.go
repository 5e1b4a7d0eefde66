package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain identifies studio errors in google.rpc.ErrorInfo details.
const Domain = "studio.sessions"

// Error is a recoverable business-rule violation reported to the caller.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// GRPCStatus lets status.FromError and status.Code read the mapped code
// directly. The domain code and metadata travel as an ErrorInfo detail.
func (e *Error) GRPCStatus() *status.Status {
	st := status.New(e.Code.GRPCCode(), e.Message)
	withInfo, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: e.Metadata,
	})
	if err != nil {
		return st
	}
	return withInfo
}

// New creates an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// WithMetadata returns e with an extra metadata entry.
func (e *Error) WithMetadata(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// Kind maps an error to a stable logging label.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	if c := GetCode(err); c != CodeUnknown {
		return strings.ToLower(string(c))
	}
	return "unexpected"
}

func NotFound(resource string, id any) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s with identifier %v not found", resource, id)).
		WithMetadata("resource", resource)
}

func InactiveResource(resource, name string) *Error {
	return New(CodeInactiveResource, fmt.Sprintf("%s %s is inactive", resource, name)).
		WithMetadata("resource", resource)
}

func InvalidArgument(field, msg string) *Error {
	return New(CodeInvalidArgument, fmt.Sprintf("%s: %s", field, msg)).
		WithMetadata("field", field)
}

// InvalidStatusTransition lists the allowed targets so clients can recover.
func InvalidStatusTransition(from, to string, allowed []string) *Error {
	list := strings.Join(allowed, ", ")
	if list == "" {
		list = "none"
	}
	return New(CodeInvalidStatusTransition, fmt.Sprintf("cannot transition from %s to %s. Allowed: %s", from, to, list)).
		WithMetadata("from", from).
		WithMetadata("to", to).
		WithMetadata("allowed", strings.Join(allowed, ","))
}

// InsufficientBalance carries the amount short (or over) in metadata.
func InsufficientBalance(sessionID any, amount decimal.Decimal, detail string) *Error {
	return New(CodeInsufficientBalance, fmt.Sprintf("insufficient balance for session %v: %s (amount %s)", sessionID, detail, amount.StringFixed(2))).
		WithMetadata("amount", amount.StringFixed(2))
}

func SessionNotEditable(sessionID any, deadline string) *Error {
	return New(CodeSessionNotEditable, fmt.Sprintf("session %v cannot be edited after changes deadline (%s)", sessionID, deadline)).
		WithMetadata("changes_deadline", deadline)
}

func SessionClosed(sessionID any, st string) *Error {
	return New(CodeSessionClosed, fmt.Sprintf("session %v is %s and can no longer change", sessionID, st)).
		WithMetadata("status", st)
}

func PackageItemsEmpty(packageID any) *Error {
	return New(CodePackageItemsEmpty, fmt.Sprintf("package %v has no items and cannot be added to session", packageID))
}

func InvalidSessionType(msg string) *Error {
	return New(CodeInvalidSessionType, msg)
}

func RoomNotAvailable(roomID any, date, at string) *Error {
	return New(CodeRoomNotAvailable, fmt.Sprintf("room %v is not available on %s at %s", roomID, date, at)).
		WithMetadata("date", date).
		WithMetadata("time", at)
}

func PhotographerNotAvailable(photographerID int64, date, at string) *Error {
	return New(CodePhotographerNotAvailable, fmt.Sprintf("photographer %d is not available on %s at %s", photographerID, date, at)).
		WithMetadata("date", date).
		WithMetadata("time", at)
}

func AlreadyAssigned(photographerID int64, sessionID any) *Error {
	return New(CodeAlreadyAssigned, fmt.Sprintf("photographer %d is already assigned to session %v", photographerID, sessionID))
}

func Unauthenticated(msg string) *Error {
	return New(CodeUnauthenticated, msg)
}

func PermissionDenied(permission string) *Error {
	return New(CodePermissionDenied, fmt.Sprintf("missing permission %s", permission)).
		WithMetadata("permission", permission)
}
