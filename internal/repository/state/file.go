package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/focus-beacon/internal/config"
	domain "github.com/oshokin/focus-beacon/internal/domain/focus"
	pb "github.com/oshokin/focus-beacon/internal/pb/v1"
)

// Repository defines persistence operations for the focus state.
type Repository interface {
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, state *domain.State) error
}

// FileRepository persists the focus state to a JSON file on disk.
// The file uses the same JSON shape as the HTTP status endpoint.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

// ErrNotFound is returned when the state file does not exist yet.
var ErrNotFound = errors.New("state not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the state from disk.
func (r *FileRepository) Load(_ context.Context) (*domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	status, err := pb.UnmarshalStatusJSON(contents)
	if err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	return status.State(), nil
}

// Save writes the state to disk atomically: a temporary file is written and
// renamed over the previous one so readers never see a partial document.
func (r *FileRepository) Save(_ context.Context, state *domain.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := pb.MarshalStatusJSON(pb.StatusFromState(state), true)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	temporaryPath := r.path + ".tmp"
	if err = os.WriteFile(temporaryPath, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	if err = os.Rename(temporaryPath, r.path); err != nil {
		_ = os.Remove(temporaryPath)

		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
