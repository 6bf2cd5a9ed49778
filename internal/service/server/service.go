package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
	repo "github.com/oshokin/focus-beacon/internal/repository/state"
)

// service holds the published focus status and keeps it persisted.
// Both the gRPC and the HTTP transports read from it.
type service struct {
	// repo handles persistent storage of the status.
	repo repo.Repository
	// state is the current in-memory status.
	state *domain.State
	// now returns the current time.
	now func() time.Time
	// mu protects state.
	mu sync.RWMutex
}

// newService creates a service backed by the provided repository.
// A missing state file means "not distracted".
func newService(ctx context.Context, repository repo.Repository) (*service, error) {
	s := &service{
		repo: repository,
		now:  time.Now,
	}

	s.state = &domain.State{
		Timestamp: s.now(),
	}

	if repository == nil {
		return s, nil
	}

	state, err := repository.Load(ctx)
	switch {
	case err == nil:
		if state != nil {
			s.state = state
		}
	case errors.Is(err, repo.ErrNotFound):
		logger.Info(ctx, "No saved status, starting as not distracted")
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	return s, nil
}

// SetStatus replaces the published signal and persists it.
// The in-memory status only changes when persisting succeeds.
func (s *service) SetStatus(ctx context.Context, actor *domain.Actor, distracted bool) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &domain.State{
		Timestamp:  s.now(),
		LastActor:  actor.Clone(),
		Distracted: distracted,
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, next); err != nil {
			return nil, fmt.Errorf("persist state: %w", err)
		}
	}

	if next.Distracted != s.state.Distracted {
		logger.InfoKV(ctx, "Focus status changed", "distracted", next.Distracted, "actor", next.LastActor)
	} else {
		logger.DebugKV(ctx, "Focus status confirmed", "distracted", next.Distracted, "actor", next.LastActor)
	}

	s.state = next

	return s.state.Clone(), nil
}

// GetStatus returns a copy of the current status.
func (s *service) GetStatus(context.Context) *domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}
