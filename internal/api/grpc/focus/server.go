package focus

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
	pb "github.com/oshokin/focus-beacon/internal/pb/v1"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	SetStatus(ctx context.Context, actor *domain.Actor, distracted bool) (*domain.State, error)
	GetStatus(ctx context.Context) *domain.State
}

// Server implements the FocusService gRPC API.
type Server struct {
	pb.UnimplementedFocusServiceServer

	// service provides the status operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// SetStatus publishes a new distraction signal.
func (s *Server) SetStatus(ctx context.Context, req *pb.SetStatusRequest) (*pb.StatusResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if req.GetActor() == nil {
		return nil, status.Error(codes.InvalidArgument, "actor is required")
	}

	state, err := s.service.SetStatus(ctx, req.GetActor().Domain(), req.GetDistracted())
	if err != nil {
		logger.ErrorKV(ctx, "Failed to set status", "actor", req.GetActor().Domain(), "error", err)

		return nil, status.Error(codes.Internal, "unable to persist status")
	}

	return pb.StatusFromState(state), nil
}

// GetStatus returns the current distraction signal.
func (s *Server) GetStatus(ctx context.Context, req *pb.GetStatusRequest) (*pb.StatusResponse, error) {
	if actor := req.GetRequestingActor(); actor != nil {
		logger.DebugKV(ctx, "Status requested", "actor", actor.Domain())
	}

	return pb.StatusFromState(s.service.GetStatus(ctx)), nil
}
