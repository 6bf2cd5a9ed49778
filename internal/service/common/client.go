//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/domain/focus"
	pb "github.com/oshokin/focus-beacon/internal/pb/v1"
)

// ErrNotConfirmed is returned by Publish when the server recorded a different signal.
var ErrNotConfirmed = errors.New("status not confirmed by server")

var (
	// errAddressRequired is returned when no server address is configured.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when a status change has no author.
	errActorRequired = errors.New("actor must be provided")
)

// Client talks to the focus server and speaks domain types to its callers.
type Client struct {
	conn *grpc.ClientConn
	api  pb.FocusServiceClient

	// callTimeout bounds each RPC. Zero disables the deadline.
	callTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCallTimeout sets the deadline applied to every RPC.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// Dial prepares a plaintext gRPC connection to the focus server.
// The connection is established lazily on the first call.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial focus server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         pb.NewFocusServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Status returns the state currently published by the server.
// The actor is only sent for the server's audit log and may be nil.
func (c *Client) Status(ctx context.Context, actor *focus.Actor) (*focus.State, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.GetStatus(callCtx, &pb.GetStatusRequest{
		RequestingActor: pb.ActorFromDomain(actor),
	})
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	return response.State(), nil
}

// Publish sets the distraction signal on behalf of actor and returns the state
// recorded by the server. When the recorded signal differs from the requested
// one the state is still returned together with ErrNotConfirmed.
func (c *Client) Publish(ctx context.Context, actor *focus.Actor, distracted bool) (*focus.State, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.SetStatus(callCtx, &pb.SetStatusRequest{
		Actor:      pb.ActorFromDomain(actor),
		Distracted: distracted,
	})
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	state := response.State()
	if state.Distracted != distracted {
		return state, fmt.Errorf("%w: requested distracted=%t", ErrNotConfirmed, distracted)
	}

	return state, nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
