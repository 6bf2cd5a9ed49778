//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another process runs the same executable.
var ErrAlreadyRunning = errors.New("another instance is already running")

// processLister lists processes; ps.Processes in production.
type processLister func() ([]ps.Process, error)

// EnsureSingleInstance fails with ErrAlreadyRunning when another process
// shares the executable name of the current one.
func EnsureSingleInstance() error {
	return ensureSingleInstance(ps.Processes, os.Getpid())
}

func ensureSingleInstance(list processLister, selfID int) error {
	processList, err := list()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	// The OS view of our own name; on Linux it is truncated like everyone else's.
	var selfName string

	for _, process := range processList {
		if process.Pid() == selfID {
			selfName = process.Executable()

			break
		}
	}

	if selfName == "" {
		return fmt.Errorf("process %d not found in the process list", selfID)
	}

	for _, process := range processList {
		if process.Pid() == selfID || process.Executable() != selfName {
			continue
		}

		return fmt.Errorf("%w: %s (pid %d)", ErrAlreadyRunning, selfName, process.Pid())
	}

	return nil
}
