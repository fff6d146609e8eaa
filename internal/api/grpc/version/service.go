package version

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "versionfile.v1.VersionService"
	// GetVersionFullMethod is the full method name of GetVersion.
	GetVersionFullMethod = "/" + ServiceName + "/" + getVersionMethod

	getVersionMethod = "GetVersion"
)

// VersionServiceServer is the server API for the version service.
type VersionServiceServer interface {
	GetVersion(ctx context.Context, req *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// VersionServiceClient is the client API for the version service.
type VersionServiceClient interface {
	GetVersion(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

//nolint:gochecknoglobals // Service descriptors are registered by address, like generated code does.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VersionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: getVersionMethod,
			Handler:    getVersionHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "versionfile/v1/version.proto",
}

// RegisterVersionServiceServer registers srv on the provided gRPC server.
func RegisterVersionServiceServer(registrar grpc.ServiceRegistrar, srv VersionServiceServer) {
	registrar.RegisterService(&serviceDesc, srv)
}

//nolint:revive // Signature is fixed by grpc.MethodHandler.
func getVersionHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(VersionServiceServer).GetVersion(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetVersionFullMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VersionServiceServer).GetVersion(ctx, req.(*emptypb.Empty)) //nolint:forcetypeassert // Same as above.
	}

	return interceptor(ctx, in, info, handler)
}

// versionServiceClient invokes the version service over a client connection.
type versionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewVersionServiceClient creates a client stub bound to cc.
//
//nolint:ireturn // Mirrors the shape of generated gRPC constructors.
func NewVersionServiceClient(cc grpc.ClientConnInterface) VersionServiceClient {
	return &versionServiceClient{cc: cc}
}

// GetVersion calls the remote GetVersion method.
func (c *versionServiceClient) GetVersion(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetVersionFullMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
