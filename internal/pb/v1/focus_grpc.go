package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully qualified gRPC method names of FocusService.
const (
	FocusServiceName            = "focusbeacon.v1.FocusService"
	FocusServiceGetStatusMethod = "/" + FocusServiceName + "/GetStatus"
	FocusServiceSetStatusMethod = "/" + FocusServiceName + "/SetStatus"
)

// FocusServiceClient is the client API for FocusService.
type FocusServiceClient interface {
	// GetStatus returns the current distraction status.
	GetStatus(ctx context.Context, in *GetStatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	// SetStatus publishes a new distraction status.
	SetStatus(ctx context.Context, in *SetStatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
}

// focusServiceClient invokes FocusService methods over a client connection.
type focusServiceClient struct {
	// cc is the underlying connection.
	cc grpc.ClientConnInterface
}

// NewFocusServiceClient creates a FocusService client over cc.
//
//nolint:ireturn // Mirrors the constructor shape of generated gRPC clients.
func NewFocusServiceClient(cc grpc.ClientConnInterface) FocusServiceClient {
	return &focusServiceClient{cc: cc}
}

// GetStatus implements FocusServiceClient.
func (c *focusServiceClient) GetStatus(
	ctx context.Context,
	in *GetStatusRequest,
	opts ...grpc.CallOption,
) (*StatusResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FocusServiceGetStatusMethod, in.toStruct(), out, opts...); err != nil {
		return nil, err
	}

	return StatusResponseFromStruct(out)
}

// SetStatus implements FocusServiceClient.
func (c *focusServiceClient) SetStatus(
	ctx context.Context,
	in *SetStatusRequest,
	opts ...grpc.CallOption,
) (*StatusResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FocusServiceSetStatusMethod, in.toStruct(), out, opts...); err != nil {
		return nil, err
	}

	return StatusResponseFromStruct(out)
}

// FocusServiceServer is the server API for FocusService.
type FocusServiceServer interface {
	// GetStatus returns the current distraction status.
	GetStatus(ctx context.Context, in *GetStatusRequest) (*StatusResponse, error)
	// SetStatus publishes a new distraction status.
	SetStatus(ctx context.Context, in *SetStatusRequest) (*StatusResponse, error)
}

// UnimplementedFocusServiceServer can be embedded to have forward compatible implementations.
type UnimplementedFocusServiceServer struct{}

// GetStatus reports codes.Unimplemented.
func (UnimplementedFocusServiceServer) GetStatus(context.Context, *GetStatusRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStatus not implemented")
}

// SetStatus reports codes.Unimplemented.
func (UnimplementedFocusServiceServer) SetStatus(context.Context, *SetStatusRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetStatus not implemented")
}

// RegisterFocusServiceServer registers srv on the provided gRPC server.
func RegisterFocusServiceServer(s grpc.ServiceRegistrar, srv FocusServiceServer) {
	s.RegisterService(&FocusServiceDesc, srv)
}

// FocusServiceDesc is the grpc.ServiceDesc for FocusService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var FocusServiceDesc = grpc.ServiceDesc{
	ServiceName: FocusServiceName,
	HandlerType: (*FocusServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetStatus",
			Handler:    focusServiceGetStatusHandler,
		},
		{
			MethodName: "SetStatus",
			Handler:    focusServiceSetStatusHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "focusbeacon/v1/focus",
}

// focusServiceGetStatusHandler decodes a GetStatus call and dispatches it to srv.
func focusServiceGetStatusHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	request, err := getStatusRequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	handler := func(ctx context.Context, _ any) (any, error) {
		response, err := srv.(FocusServiceServer).GetStatus(ctx, request)
		if err != nil {
			return nil, err
		}

		return response.ToStruct(), nil
	}

	if interceptor == nil {
		return handler(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FocusServiceGetStatusMethod,
	}

	return interceptor(ctx, in, info, handler)
}

// focusServiceSetStatusHandler decodes a SetStatus call and dispatches it to srv.
func focusServiceSetStatusHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	request, err := setStatusRequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	handler := func(ctx context.Context, _ any) (any, error) {
		response, err := srv.(FocusServiceServer).SetStatus(ctx, request)
		if err != nil {
			return nil, err
		}

		return response.ToStruct(), nil
	}

	if interceptor == nil {
		return handler(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FocusServiceSetStatusMethod,
	}

	return interceptor(ctx, in, info, handler)
}
