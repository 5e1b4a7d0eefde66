package grpcapi

import (
	"context"

	"google.golang.org/grpc"

	"github.com/Leganyst/photo-studio/internal/apperr"
)

const ServiceName = "studio.sessions.v1.Sessions"

// SessionsServer is the server API of studio.sessions.v1.Sessions.
type SessionsServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*Session, error)
	GetSession(context.Context, *SessionRequest) (*Session, error)
	UpdateSession(context.Context, *UpdateSessionRequest) (*Session, error)
	ListSessions(context.Context, *ListSessionsRequest) (*ListSessionsResponse, error)
	GetHistory(context.Context, *SessionRequest) (*HistoryResponse, error)
	TransitionSession(context.Context, *TransitionRequest) (*Session, error)
	CancelSession(context.Context, *CancelSessionRequest) (*Session, error)
	MarkReadyForDelivery(context.Context, *MarkReadyRequest) (*Session, error)
	AssignEditor(context.Context, *AssignEditorRequest) (*Session, error)
	RecalculateTotals(context.Context, *SessionRequest) (*Session, error)

	AddItem(context.Context, *AddItemRequest) (*Detail, error)
	AddPackage(context.Context, *AddPackageRequest) (*DetailsResponse, error)
	RemoveDetail(context.Context, *DetailRequest) (*Empty, error)
	MarkDetailDelivered(context.Context, *DetailRequest) (*Detail, error)
	ListDetails(context.Context, *SessionRequest) (*DetailsResponse, error)

	RecordPayment(context.Context, *RecordPaymentRequest) (*Payment, error)
	ListPayments(context.Context, *SessionRequest) (*PaymentsResponse, error)

	AssignPhotographer(context.Context, *AssignPhotographerRequest) (*Assignment, error)
	MarkAttended(context.Context, *MarkAttendedRequest) (*Assignment, error)
	RemoveAssignment(context.Context, *AssignmentRequest) (*Empty, error)
	ListPhotographers(context.Context, *SessionRequest) (*AssignmentsResponse, error)

	DashboardStats(context.Context, *DashboardRequest) (*DashboardResponse, error)
}

// unary builds a method descriptor that decodes Req, runs the interceptor
// chain and converts domain errors into gRPC statuses.
func unary[Req, Resp any](name string, call func(SessionsServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(SessionsServer), ctx, req.(*Req))
				if err != nil {
					return nil, apperr.ToStatus(err)
				}
				return resp, nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateSession", SessionsServer.CreateSession),
		unary("GetSession", SessionsServer.GetSession),
		unary("UpdateSession", SessionsServer.UpdateSession),
		unary("ListSessions", SessionsServer.ListSessions),
		unary("GetHistory", SessionsServer.GetHistory),
		unary("TransitionSession", SessionsServer.TransitionSession),
		unary("CancelSession", SessionsServer.CancelSession),
		unary("MarkReadyForDelivery", SessionsServer.MarkReadyForDelivery),
		unary("AssignEditor", SessionsServer.AssignEditor),
		unary("RecalculateTotals", SessionsServer.RecalculateTotals),
		unary("AddItem", SessionsServer.AddItem),
		unary("AddPackage", SessionsServer.AddPackage),
		unary("RemoveDetail", SessionsServer.RemoveDetail),
		unary("MarkDetailDelivered", SessionsServer.MarkDetailDelivered),
		unary("ListDetails", SessionsServer.ListDetails),
		unary("RecordPayment", SessionsServer.RecordPayment),
		unary("ListPayments", SessionsServer.ListPayments),
		unary("AssignPhotographer", SessionsServer.AssignPhotographer),
		unary("MarkAttended", SessionsServer.MarkAttended),
		unary("RemoveAssignment", SessionsServer.RemoveAssignment),
		unary("ListPhotographers", SessionsServer.ListPhotographers),
		unary("DashboardStats", SessionsServer.DashboardStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "studio/sessions/v1/sessions.proto",
}

func RegisterSessionsServer(s grpc.ServiceRegistrar, srv SessionsServer) {
	s.RegisterService(&ServiceDesc, srv)
}
