package grpcapi

import (
	"context"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client calls studio.sessions.v1.Sessions with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithActor attaches the caller id to outgoing calls.
func WithActor(ctx context.Context, actor int64) context.Context {
	return metadata.AppendToOutgoingContext(ctx, ActorMetadataKey, strconv.FormatInt(actor, 10))
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "CreateSession", in, opts)
}

func (c *Client) GetSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "GetSession", in, opts)
}

func (c *Client) UpdateSession(ctx context.Context, in *UpdateSessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "UpdateSession", in, opts)
}

func (c *Client) ListSessions(ctx context.Context, in *ListSessionsRequest, opts ...grpc.CallOption) (*ListSessionsResponse, error) {
	return invoke[ListSessionsResponse](ctx, c, "ListSessions", in, opts)
}

func (c *Client) GetHistory(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[HistoryResponse](ctx, c, "GetHistory", in, opts)
}

func (c *Client) TransitionSession(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "TransitionSession", in, opts)
}

func (c *Client) CancelSession(ctx context.Context, in *CancelSessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "CancelSession", in, opts)
}

func (c *Client) MarkReadyForDelivery(ctx context.Context, in *MarkReadyRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "MarkReadyForDelivery", in, opts)
}

func (c *Client) AssignEditor(ctx context.Context, in *AssignEditorRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "AssignEditor", in, opts)
}

func (c *Client) RecalculateTotals(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c, "RecalculateTotals", in, opts)
}

func (c *Client) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*Detail, error) {
	return invoke[Detail](ctx, c, "AddItem", in, opts)
}

func (c *Client) AddPackage(ctx context.Context, in *AddPackageRequest, opts ...grpc.CallOption) (*DetailsResponse, error) {
	return invoke[DetailsResponse](ctx, c, "AddPackage", in, opts)
}

func (c *Client) RemoveDetail(ctx context.Context, in *DetailRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "RemoveDetail", in, opts)
}

func (c *Client) MarkDetailDelivered(ctx context.Context, in *DetailRequest, opts ...grpc.CallOption) (*Detail, error) {
	return invoke[Detail](ctx, c, "MarkDetailDelivered", in, opts)
}

func (c *Client) ListDetails(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*DetailsResponse, error) {
	return invoke[DetailsResponse](ctx, c, "ListDetails", in, opts)
}

func (c *Client) RecordPayment(ctx context.Context, in *RecordPaymentRequest, opts ...grpc.CallOption) (*Payment, error) {
	return invoke[Payment](ctx, c, "RecordPayment", in, opts)
}

func (c *Client) ListPayments(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*PaymentsResponse, error) {
	return invoke[PaymentsResponse](ctx, c, "ListPayments", in, opts)
}

func (c *Client) AssignPhotographer(ctx context.Context, in *AssignPhotographerRequest, opts ...grpc.CallOption) (*Assignment, error) {
	return invoke[Assignment](ctx, c, "AssignPhotographer", in, opts)
}

func (c *Client) MarkAttended(ctx context.Context, in *MarkAttendedRequest, opts ...grpc.CallOption) (*Assignment, error) {
	return invoke[Assignment](ctx, c, "MarkAttended", in, opts)
}

func (c *Client) RemoveAssignment(ctx context.Context, in *AssignmentRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "RemoveAssignment", in, opts)
}

func (c *Client) ListPhotographers(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*AssignmentsResponse, error) {
	return invoke[AssignmentsResponse](ctx, c, "ListPhotographers", in, opts)
}

func (c *Client) DashboardStats(ctx context.Context, in *DashboardRequest, opts ...grpc.CallOption) (*DashboardResponse, error) {
	return invoke[DashboardResponse](ctx, c, "DashboardStats", in, opts)
}
