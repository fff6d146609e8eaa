//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var errTestRPC = errors.New("test rpc error")

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// fakeVersionClient returns a canned response and records the deadline it was called with.
type fakeVersionClient struct {
	// value is returned by GetVersion.
	value string
	// err is returned by GetVersion when set.
	err error
	// hadDeadline reports whether the last call carried a deadline.
	hadDeadline bool
}

// GetVersion implements api.VersionServiceClient.
func (f *fakeVersionClient) GetVersion(
	ctx context.Context,
	_ *emptypb.Empty,
	_ ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	_, f.hadDeadline = ctx.Deadline()

	if f.err != nil {
		return nil, f.err
	}

	return wrapperspb.String(f.value), nil
}

// TestClient_GetVersion verifies the wrapper applies the call timeout and wraps errors.
func TestClient_GetVersion(t *testing.T) {
	t.Parallel()

	stub := &fakeVersionClient{value: "1.2.3"}
	c := &Client{
		api:         stub,
		callTimeout: time.Second,
	}

	resp, err := c.GetVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.2.3", resp.GetValue())
	require.True(t, stub.hadDeadline)

	stub.err = errTestRPC

	_, err = c.GetVersion(context.Background())
	require.ErrorIs(t, err, errTestRPC)
}

// TestClient_CloseNil ensures Close tolerates an unconnected client.
func TestClient_CloseNil(t *testing.T) {
	t.Parallel()

	var c *Client

	require.NoError(t, c.Close())
	require.NoError(t, new(Client).Close())
}
