//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// fakeProcess implements ps.Process.
type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

func listOf(processes ...fakeProcess) processLister {
	return func() ([]ps.Process, error) {
		result := make([]ps.Process, 0, len(processes))
		for _, p := range processes {
			result = append(result, p)
		}

		return result, nil
	}
}

// TestEnsureSingleInstance covers the process list outcomes.
func TestEnsureSingleInstance(t *testing.T) {
	t.Parallel()

	t.Run("alone", func(t *testing.T) {
		t.Parallel()

		err := ensureSingleInstance(listOf(
			fakeProcess{pid: 10, name: "focus-notifier"},
			fakeProcess{pid: 11, name: "focus-server"},
		), 10)
		require.NoError(t, err)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()

		err := ensureSingleInstance(listOf(
			fakeProcess{pid: 10, name: "focus-notifier"},
			fakeProcess{pid: 12, name: "focus-notifier"},
		), 10)
		require.ErrorIs(t, err, ErrAlreadyRunning)
		require.ErrorContains(t, err, "pid 12")
	})

	t.Run("self missing", func(t *testing.T) {
		t.Parallel()

		err := ensureSingleInstance(listOf(fakeProcess{pid: 12, name: "focus-notifier"}), 10)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrAlreadyRunning)
	})

	t.Run("list failure", func(t *testing.T) {
		t.Parallel()

		err := ensureSingleInstance(func() ([]ps.Process, error) {
			return nil, errors.New("permission denied")
		}, 10)
		require.ErrorContains(t, err, "permission denied")
	})
}
