// Package console draws the focus icon on the last line of a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
)

const (
	// Glyphs written for each icon, colored with SGR sequences.
	normalGlyph = "\033[32m● focused\033[0m"
	alertGlyph  = "\033[1;31m◉ distracted\033[0m"

	// DECSC, reset scroll region, jump to the last line, clear it.
	statusLinePrefix = "\0337\033[r\033[999;1H\033[2K"
	// DECRC.
	statusLineSuffix = "\0338"
)

// Renderer writes a status glyph to the terminal status line.
type Renderer struct {
	mu sync.Mutex
	w  io.Writer
}

// New returns a renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render redraws the status line with the glyph for icon.
func (r *Renderer) Render(ctx context.Context, icon focus.Icon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprint(r.w, statusLinePrefix, glyph(icon), statusLineSuffix); err != nil {
		logger.WarnKV(ctx, "Failed to draw status line", "icon", icon, "error", err)

		return fmt.Errorf("draw status line: %w", err)
	}

	return nil
}

// Clear erases the status line.
func (r *Renderer) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := fmt.Fprint(r.w, "\0337\033[999;1H\033[2K", statusLineSuffix)

	return err
}

func glyph(icon focus.Icon) string {
	if icon == focus.IconAlert {
		return alertGlyph
	}

	return normalGlyph
}
