package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/version-file/internal/config"
	"github.com/oshokin/version-file/internal/logger"
	"github.com/oshokin/version-file/internal/service/common"
	"github.com/oshokin/version-file/internal/version"
)

const (
	// OutputText prints "version: <value>".
	OutputText = "text"
	// OutputJSON prints the protobuf JSON form of the response.
	OutputJSON = "json"
)

// Options configures the version client.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	// The file must exist: it provides the timeout and the log level.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Output selects the output format: OutputText or OutputJSON.
	Output string
	// Wait keeps retrying while the server is unavailable, until ctx is canceled.
	Wait bool
	// Out receives the printed version.
	Out io.Writer
}

// defaultRetryInterval is the delay between attempts when Wait is set.
const defaultRetryInterval = 1 * time.Second

// errUnknownOutput is returned for an unsupported output format.
var errUnknownOutput = errors.New("unknown output format")

// versionGetter is the part of the gRPC client used by fetch.
type versionGetter interface {
	GetVersion(ctx context.Context) (*wrapperspb.StringValue, error)
}

// remoteVersion adapts a server response to version.Provider.
type remoteVersion string

// VersionString implements version.Provider.
func (v remoteVersion) VersionString() string {
	return string(v)
}

// Run requests the version from the server and prints it to opts.Out.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "version-client")

	if opts.Output == "" {
		opts.Output = OutputText
	}

	if opts.Output != OutputText && opts.Output != OutputJSON {
		return fmt.Errorf("%w %q", errUnknownOutput, opts.Output)
	}

	// Settings are required even when the server address is passed explicitly.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = logger.SetLevelFromString(cfg.LogLevel); err != nil {
		return fmt.Errorf("apply log level: %w", err)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ListenAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Requesting version", "server_address", serverAddress)

	resp, err := fetch(ctx, client, opts.Wait, defaultRetryInterval)
	if err != nil {
		return err
	}

	return printVersion(opts.Out, opts.Output, resp)
}

// fetch calls GetVersion once, or while the server is unavailable when wait is set.
func fetch(
	ctx context.Context,
	client versionGetter,
	wait bool,
	interval time.Duration,
) (*wrapperspb.StringValue, error) {
	for {
		resp, err := client.GetVersion(ctx)
		if err == nil {
			return resp, nil
		}

		if !wait || status.Code(err) != codes.Unavailable {
			return nil, err
		}

		logger.WarnKV(ctx, "Version server unavailable, retrying", "error", err, "interval", interval)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for version server: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}

// printVersion writes resp to out in the requested format.
func printVersion(out io.Writer, format string, resp *wrapperspb.StringValue) error {
	if out == nil {
		out = io.Discard
	}

	var line string

	switch format {
	case OutputJSON:
		data, err := protojson.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}

		line = string(data)
	default:
		line = version.Full(remoteVersion(resp.GetValue()))
	}

	if _, err := fmt.Fprintln(out, line); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
