package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	api "github.com/oshokin/version-file/internal/api/grpc/version"
	httpstatus "github.com/oshokin/version-file/internal/api/http/status"
	"github.com/oshokin/version-file/internal/logger"
	"github.com/oshokin/version-file/internal/version"
)

// readHeaderTimeout bounds how long the status endpoint waits for request headers.
const readHeaderTimeout = 5 * time.Second

// setGinMode switches gin to release mode once per process.
//
//nolint:gochecknoglobals // gin keeps its mode in a package-level variable.
var setGinMode = sync.OnceFunc(func() {
	gin.SetMode(gin.ReleaseMode)
})

// loadVersion constructs the version source from baseDir,
// or from the executable's directory when baseDir is empty.
func loadVersion(ctx context.Context, baseDir string) (*version.File, error) {
	if baseDir == "" {
		return version.LoadFromExecutable(ctx)
	}

	return version.Load(ctx, baseDir)
}

// newGRPCServer builds a gRPC server exposing the version and health services.
func newGRPCServer(ctx context.Context, provider version.Provider) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger(logger.FromContext(ctx))))
	api.RegisterVersionServiceServer(grpcServer, api.NewServer(provider))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer, healthServer
}

// newHTTPServer builds the HTTP server for the status endpoint.
func newHTTPServer(ctx context.Context, provider version.Provider, timeout time.Duration) *http.Server {
	setGinMode()

	base := logger.FromContext(ctx).Named("http")

	return &http.Server{
		Handler:           httpstatus.NewRouter(provider),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      timeout,
		BaseContext: func(_ net.Listener) context.Context {
			return logger.ToContext(context.Background(), base)
		},
	}
}

// unaryLogger puts base into each request context and logs the call outcome.
func unaryLogger(base *zap.SugaredLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.ToContext(ctx, base)
		start := time.Now()

		resp, err := handler(ctx, req)

		kvs := []any{
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		}

		if err != nil {
			logger.WarnKV(ctx, "gRPC call failed", kvs...)
		} else {
			logger.DebugKV(ctx, "gRPC call", kvs...)
		}

		return resp, err
	}
}

// stopGRPC drains in-flight calls and forces a stop after timeout.
func stopGRPC(ctx context.Context, server *grpc.Server, timeout time.Duration) {
	done := make(chan struct{})

	go func() {
		server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		logger.Warn(ctx, "Graceful gRPC shutdown timed out, forcing stop")
		server.Stop()
		<-done
	}
}

// shutdownHTTP closes the status endpoint within timeout.
func shutdownHTTP(ctx context.Context, server *http.Server, timeout time.Duration) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "Failed to shut down status endpoint: %v", err)
	}
}
