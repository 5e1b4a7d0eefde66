// Package apperr holds the business-rule error taxonomy of the studio core
// and its mapping onto gRPC status codes.
package apperr

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	CodeNotFound         Code = "NOT_FOUND"
	CodeInactiveResource Code = "INACTIVE_RESOURCE"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"

	// Session lifecycle
	CodeInvalidStatusTransition Code = "INVALID_STATUS_TRANSITION"
	CodeInsufficientBalance     Code = "INSUFFICIENT_BALANCE"
	CodeSessionNotEditable      Code = "SESSION_NOT_EDITABLE"
	CodeSessionClosed           Code = "SESSION_CLOSED"

	// Package explosion
	CodePackageItemsEmpty  Code = "PACKAGE_ITEMS_EMPTY"
	CodeInvalidSessionType Code = "INVALID_SESSION_TYPE"

	// Availability
	CodeRoomNotAvailable         Code = "ROOM_NOT_AVAILABLE"
	CodePhotographerNotAvailable Code = "PHOTOGRAPHER_NOT_AVAILABLE"
	CodeAlreadyAssigned          Code = "ALREADY_ASSIGNED"

	// Access
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodePermissionDenied Code = "PERMISSION_DENIED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidArgument,
		CodeInvalidSessionType:
		return codes.InvalidArgument

	case CodeInactiveResource,
		CodeInvalidStatusTransition,
		CodeInsufficientBalance,
		CodeSessionNotEditable,
		CodeSessionClosed,
		CodePackageItemsEmpty:
		return codes.FailedPrecondition

	case CodeRoomNotAvailable,
		CodePhotographerNotAvailable,
		CodeAlreadyAssigned:
		return codes.AlreadyExists

	case CodeNotFound:
		return codes.NotFound

	case CodeUnauthenticated:
		return codes.Unauthenticated

	case CodePermissionDenied:
		return codes.PermissionDenied

	default:
		return codes.Internal
	}
}
