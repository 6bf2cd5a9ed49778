//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
)

// DetectActor returns the current host and user.
func DetectActor() (*focus.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &focus.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
