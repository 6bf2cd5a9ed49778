package focus

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/focus-beacon/internal/domain/focus"
	pb "github.com/oshokin/focus-beacon/internal/pb/v1"
)

// fakeService implements Service for unit testing the transport.
type fakeService struct {
	// setFn overrides SetStatus when provided.
	setFn func(ctx context.Context, actor *domain.Actor, distracted bool) (*domain.State, error)

	// state holds the current status.
	state *domain.State
}

// SetStatus delegates to setFn or stores the new state.
func (f *fakeService) SetStatus(ctx context.Context, actor *domain.Actor, distracted bool) (*domain.State, error) {
	if f.setFn != nil {
		return f.setFn(ctx, actor, distracted)
	}

	f.state = &domain.State{
		Timestamp:  time.Now(),
		LastActor:  actor,
		Distracted: distracted,
	}

	return f.state, nil
}

// GetStatus returns the stored state.
func (f *fakeService) GetStatus(context.Context) *domain.State { return f.state }

// TestServer_SetStatus_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_SetStatus_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.SetStatus(t.Context(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetStatus(t.Context(), &pb.SetStatusRequest{Distracted: true})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_SetStatus_ServiceFailure maps persistence failures to Internal.
func TestServer_SetStatus_ServiceFailure(t *testing.T) {
	t.Parallel()

	s := NewServer(&fakeService{
		setFn: func(context.Context, *domain.Actor, bool) (*domain.State, error) {
			return nil, errors.New("disk full")
		},
	})

	_, err := s.SetStatus(t.Context(), &pb.SetStatusRequest{Actor: &pb.SystemActor{Hostname: "h"}})
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestServer_Roundtrip exercises SetStatus and GetStatus on the server implementation.
func TestServer_Roundtrip(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		s := NewServer(new(fakeService))

		request := &pb.SetStatusRequest{
			Actor: &pb.SystemActor{
				Hostname: "test-hostname",
				Username: "test-user",
			},
			Distracted: true,
		}

		_, err := s.SetStatus(t.Context(), request)
		require.NoError(t, err)

		response, err := s.GetStatus(t.Context(), new(pb.GetStatusRequest))
		require.NoError(t, err)
		require.True(t, response.GetDistracted())
		require.True(t, response.GetTimestamp().Equal(time.Now()))
		require.Equal(t, "test-hostname", response.GetLastActor().GetHostname())
		require.Equal(t, "test-user", response.GetLastActor().GetUsername())
	})
}

// TestServer_GetStatus_Empty returns a not distracted status before any update.
func TestServer_GetStatus_Empty(t *testing.T) {
	t.Parallel()

	response, err := NewServer(new(fakeService)).GetStatus(t.Context(), nil)
	require.NoError(t, err)
	require.False(t, response.GetDistracted())
	require.Nil(t, response.GetLastActor())
}
