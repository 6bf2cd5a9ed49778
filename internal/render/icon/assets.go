package icon

import (
	"embed"
	"fmt"
	"sync"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
)

const (
	// SmallSize is the edge of the small icon in pixels.
	SmallSize = 16
	// LargeSize is the edge of the large icon in pixels.
	LargeSize = 48

	assetsDir = "assets/"
)

//go:embed assets/*.png
var assetsFS embed.FS

// Set is one icon in both sizes, PNG encoded.
type Set struct {
	Small []byte
	Large []byte
}

var cache sync.Map

// ForIcon returns the image set for the provided icon.
func ForIcon(i focus.Icon) (Set, error) {
	if cached, ok := cache.Load(i); ok {
		return cached.(Set), nil //nolint:errcheck,forcetypeassert // Only Set values are stored.
	}

	name, err := baseName(i)
	if err != nil {
		return Set{}, err
	}

	small, err := assetsFS.ReadFile(fmt.Sprintf("%sicon_%s_%d.png", assetsDir, name, SmallSize))
	if err != nil {
		return Set{}, fmt.Errorf("load small %s icon: %w", name, err)
	}

	large, err := assetsFS.ReadFile(fmt.Sprintf("%sicon_%s_%d.png", assetsDir, name, LargeSize))
	if err != nil {
		return Set{}, fmt.Errorf("load large %s icon: %w", name, err)
	}

	set := Set{
		Small: small,
		Large: large,
	}
	cache.Store(i, set)

	return set, nil
}

// MustForIcon is ForIcon that panics on error. The assets are embedded,
// so an error means a broken build.
func MustForIcon(i focus.Icon) Set {
	set, err := ForIcon(i)
	if err != nil {
		panic(err)
	}

	return set
}

func baseName(i focus.Icon) (string, error) {
	switch i {
	case focus.IconNormal:
		return "normal", nil
	case focus.IconAlert:
		return "alert", nil
	default:
		return "", fmt.Errorf("unknown icon %d", i)
	}
}
