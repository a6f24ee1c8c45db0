package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"floodFriend/internal/service"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "floodfriend.v1.FloodFriend"

// FloodFriendServer is the server API for the FloodFriend service.
type FloodFriendServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	Me(context.Context, *Empty) (*UserResponse, error)
	ListUsers(context.Context, *Empty) (*ListUsersResponse, error)
	PromoteUser(context.Context, *PromoteUserRequest) (*UserResponse, error)

	AddAlert(context.Context, *AddAlertRequest) (*AlertResponse, error)
	DeleteAlert(context.Context, *DeleteRequest) (*Empty, error)
	ListAlerts(context.Context, *PageRequest) (*ListAlertsResponse, error)
	AddResource(context.Context, *AddResourceRequest) (*ResourceResponse, error)
	DeleteResource(context.Context, *DeleteRequest) (*Empty, error)
	ListResources(context.Context, *PageRequest) (*ListResourcesResponse, error)

	CreateRequest(context.Context, *CreateRequestRequest) (*AidRequestResponse, error)
	UpdateRequestStatus(context.Context, *UpdateRequestStatusRequest) (*AidRequestResponse, error)
	ListRequests(context.Context, *PageRequest) (*ListRequestsResponse, error)

	GetAnalysis(context.Context, *Empty) (*service.Analysis, error)
	GetMap(context.Context, *Empty) (*service.MapView, error)
}

// RegisterFloodFriendServer registers srv on s.
func RegisterFloodFriendServer(s grpc.ServiceRegistrar, srv FloodFriendServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FloodFriendServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", FloodFriendServer.Register),
		unary("Login", FloodFriendServer.Login),
		unary("Logout", FloodFriendServer.Logout),
		unary("Me", FloodFriendServer.Me),
		unary("ListUsers", FloodFriendServer.ListUsers),
		unary("PromoteUser", FloodFriendServer.PromoteUser),
		unary("AddAlert", FloodFriendServer.AddAlert),
		unary("DeleteAlert", FloodFriendServer.DeleteAlert),
		unary("ListAlerts", FloodFriendServer.ListAlerts),
		unary("AddResource", FloodFriendServer.AddResource),
		unary("DeleteResource", FloodFriendServer.DeleteResource),
		unary("ListResources", FloodFriendServer.ListResources),
		unary("CreateRequest", FloodFriendServer.CreateRequest),
		unary("UpdateRequestStatus", FloodFriendServer.UpdateRequestStatus),
		unary("ListRequests", FloodFriendServer.ListRequests),
		unary("GetAnalysis", FloodFriendServer.GetAnalysis),
		unary("GetMap", FloodFriendServer.GetMap),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "floodfriend/v1/floodfriend.json",
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary builds the method descriptor the protoc plugin would generate for a
// single request/response call.
func unary[Req, Resp any](name string, call func(FloodFriendServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	full := fullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(FloodFriendServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(FloodFriendServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
