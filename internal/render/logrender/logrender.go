// Package logrender is a renderer that only logs icon changes.
// It serves headless hosts and debugging.
package logrender

import (
	"context"
	"sync"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
)

// Renderer logs every render at info level.
type Renderer struct {
	mu      sync.Mutex
	current focus.Icon
	renders int
}

// New returns a log renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render logs the icon. It never fails.
func (r *Renderer) Render(ctx context.Context, icon focus.Icon) error {
	r.mu.Lock()
	r.current = icon
	r.renders++
	renders := r.renders
	r.mu.Unlock()

	logger.InfoKV(ctx, "Icon rendered", "icon", icon, "renders", renders)

	return nil
}

// Current returns the last rendered icon and the number of renders.
func (r *Renderer) Current() (focus.Icon, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current, r.renders
}
