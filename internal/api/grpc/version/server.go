package version

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/version-file/internal/logger"
	domain "github.com/oshokin/version-file/internal/version"
)

// Server implements the VersionService gRPC API.
type Server struct {
	// provider supplies the version loaded at startup.
	provider domain.Provider
}

var _ VersionServiceServer = (*Server)(nil)

// NewServer wires the provided version source into a gRPC handler.
func NewServer(provider domain.Provider) *Server {
	return &Server{
		provider: provider,
	}
}

// GetVersion returns the version string of the running server.
// An absent version is reported as an empty string value.
func (s *Server) GetVersion(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if s.provider == nil {
		return nil, status.Error(codes.Unavailable, "version is not loaded")
	}

	v := s.provider.VersionString()

	logger.DebugKV(ctx, "Version requested", "version", v)

	return wrapperspb.String(v), nil
}
