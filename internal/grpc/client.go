package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"floodFriend/internal/service"
)

// Client calls the FloodFriend service over an established connection.
// Every call is sent with the JSON content subtype.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[RegisterRequest, AuthResponse](ctx, c.cc, "Register", in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[LoginRequest, AuthResponse](ctx, c.cc, "Login", in, opts)
}

func (c *Client) Logout(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke[Empty, Empty](ctx, c.cc, "Logout", &Empty{}, opts)
	return err
}

func (c *Client) Me(ctx context.Context, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[Empty, UserResponse](ctx, c.cc, "Me", &Empty{}, opts)
}

func (c *Client) ListUsers(ctx context.Context, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[Empty, ListUsersResponse](ctx, c.cc, "ListUsers", &Empty{}, opts)
}

func (c *Client) PromoteUser(ctx context.Context, in *PromoteUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[PromoteUserRequest, UserResponse](ctx, c.cc, "PromoteUser", in, opts)
}

func (c *Client) AddAlert(ctx context.Context, in *AddAlertRequest, opts ...grpc.CallOption) (*AlertResponse, error) {
	return invoke[AddAlertRequest, AlertResponse](ctx, c.cc, "AddAlert", in, opts)
}

func (c *Client) DeleteAlert(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) error {
	_, err := invoke[DeleteRequest, Empty](ctx, c.cc, "DeleteAlert", in, opts)
	return err
}

func (c *Client) ListAlerts(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*ListAlertsResponse, error) {
	return invoke[PageRequest, ListAlertsResponse](ctx, c.cc, "ListAlerts", in, opts)
}

func (c *Client) AddResource(ctx context.Context, in *AddResourceRequest, opts ...grpc.CallOption) (*ResourceResponse, error) {
	return invoke[AddResourceRequest, ResourceResponse](ctx, c.cc, "AddResource", in, opts)
}

func (c *Client) DeleteResource(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) error {
	_, err := invoke[DeleteRequest, Empty](ctx, c.cc, "DeleteResource", in, opts)
	return err
}

func (c *Client) ListResources(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*ListResourcesResponse, error) {
	return invoke[PageRequest, ListResourcesResponse](ctx, c.cc, "ListResources", in, opts)
}

func (c *Client) CreateRequest(ctx context.Context, in *CreateRequestRequest, opts ...grpc.CallOption) (*AidRequestResponse, error) {
	return invoke[CreateRequestRequest, AidRequestResponse](ctx, c.cc, "CreateRequest", in, opts)
}

func (c *Client) UpdateRequestStatus(ctx context.Context, in *UpdateRequestStatusRequest, opts ...grpc.CallOption) (*AidRequestResponse, error) {
	return invoke[UpdateRequestStatusRequest, AidRequestResponse](ctx, c.cc, "UpdateRequestStatus", in, opts)
}

func (c *Client) ListRequests(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*ListRequestsResponse, error) {
	return invoke[PageRequest, ListRequestsResponse](ctx, c.cc, "ListRequests", in, opts)
}

func (c *Client) GetAnalysis(ctx context.Context, opts ...grpc.CallOption) (*service.Analysis, error) {
	return invoke[Empty, service.Analysis](ctx, c.cc, "GetAnalysis", &Empty{}, opts)
}

func (c *Client) GetMap(ctx context.Context, opts ...grpc.CallOption) (*service.MapView, error) {
	return invoke[Empty, service.MapView](ctx, c.cc, "GetMap", &Empty{}, opts)
}
