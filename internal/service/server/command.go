package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/oshokin/version-file/internal/config"
	"github.com/oshokin/version-file/internal/logger"
)

// Options controls the version-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// StatusAddress provides an optional listen address override for the HTTP status endpoint.
	StatusAddress string
	// BaseDir is the directory holding version.yaml. Empty means the executable's
	// directory; binaries never set it, tests inject fixtures through it.
	BaseDir string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run loads the version descriptor, starts the gRPC server and the optional HTTP
// status endpoint, and blocks until ctx is canceled or a server fails.
// Startup is aborted if the descriptor cannot be loaded.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "version-server")

	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = logger.SetLevelFromString(settings.LogLevel); err != nil {
		return fmt.Errorf("apply log level: %w", err)
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ListenAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	statusAddress := settings.StatusAddress
	if opts.StatusAddress != "" {
		statusAddress = opts.StatusAddress
	}

	// The descriptor is loaded once; without it the server does not start.
	file, err := loadVersion(ctx, opts.BaseDir)
	if err != nil {
		return fmt.Errorf("load version: %w", err)
	}

	logger.InfoKV(ctx, "Version descriptor loaded", "path", file.Path(), "version", file.VersionString())

	lc := net.ListenConfig{}

	grpcListener, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	var statusListener net.Listener
	if statusAddress != "" {
		statusListener, err = lc.Listen(ctx, "tcp", statusAddress)
		if err != nil {
			_ = grpcListener.Close() //nolint:errcheck // The listen error is the one worth reporting.

			return fmt.Errorf("listen on %s: %w", statusAddress, err)
		}
	}

	grpcServer, healthServer := newGRPCServer(ctx, file)

	var httpServer *http.Server
	if statusListener != nil {
		httpServer = newHTTPServer(ctx, file, settings.Timeout)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoKV(ctx, "gRPC server listening", "listen_address", grpcListener.Addr().String())

		if serveErr := grpcServer.Serve(grpcListener); serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", serveErr)
		}

		return nil
	})

	if httpServer != nil {
		g.Go(func() error {
			logger.InfoKV(ctx, "Status endpoint listening", "status_address", statusListener.Addr().String())

			if serveErr := httpServer.Serve(statusListener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				return fmt.Errorf("serve HTTP: %w", serveErr)
			}

			return nil
		})
	}

	// Stops both servers once the parent context is canceled or one of them fails.
	g.Go(func() error {
		<-gctx.Done()

		logger.Info(ctx, "Shutting down servers")
		healthServer.Shutdown()

		if httpServer != nil {
			shutdownHTTP(ctx, httpServer, settings.Timeout)
		}

		stopGRPC(ctx, grpcServer, settings.Timeout)

		return nil
	})

	if err = g.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Servers stopped")

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	// Extract port from config address (e.g., "server.example.com:8080" -> ":8080").
	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// Parse the address to extract port.
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Return port-only listen address to bind on all interfaces.
	return ":" + port, nil
}
