// Package tray renders the focus icon in the system tray.
package tray

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"fyne.io/systray"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
	"github.com/oshokin/focus-beacon/internal/render/icon"
)

const (
	tooltipNormal = "focus-beacon: focused"
	tooltipAlert  = "focus-beacon: distracted"
	goosWindows   = "windows"
)

// surface is the part of the tray API the renderer needs.
type surface interface {
	SetIcon(data []byte)
	SetTooltip(text string)
}

// systraySurface forwards to the process-wide tray.
type systraySurface struct{}

// SetIcon replaces the tray icon with data in the platform image format.
func (systraySurface) SetIcon(data []byte) { systray.SetIcon(data) }

// SetTooltip sets the hover text of the tray icon.
func (systraySurface) SetTooltip(text string) { systray.SetTooltip(text) }

// Renderer shows the icon in the system tray.
// It is only usable while Run is active.
type Renderer struct {
	surface surface
	images  map[focus.Icon][]byte
}

// New returns a tray renderer with images in the format of the current OS.
func New() (*Renderer, error) {
	return newRenderer(systraySurface{}, runtime.GOOS)
}

func newRenderer(s surface, goos string) (*Renderer, error) {
	images := make(map[focus.Icon][]byte, 2)

	for _, i := range []focus.Icon{focus.IconNormal, focus.IconAlert} {
		data, err := imageFor(i, goos)
		if err != nil {
			return nil, err
		}

		images[i] = data
	}

	return &Renderer{
		surface: s,
		images:  images,
	}, nil
}

// Render swaps the tray image and tooltip.
func (r *Renderer) Render(ctx context.Context, i focus.Icon) error {
	data, found := r.images[i]
	if !found {
		logger.WarnKV(ctx, "No tray image for icon", "icon", i)

		return fmt.Errorf("no tray image for icon %s", i)
	}

	r.surface.SetIcon(data)
	r.surface.SetTooltip(tooltip(i))

	return nil
}

// Run starts the tray loop on the calling goroutine, which must be the main
// goroutine on macOS. Once the tray is ready, ready runs in its own goroutine
// with a context that is canceled when ctx ends or the user picks "Quit".
// The tray loop exits when ready returns, and Run returns ready's error.
func Run(ctx context.Context, ready func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		started atomic.Bool
		done    = make(chan error, 1)
	)

	onReady := func() {
		started.Store(true)

		if data, err := imageFor(focus.IconNormal, runtime.GOOS); err == nil {
			systray.SetIcon(data)
		}

		systray.SetTooltip(tooltipNormal)

		quit := systray.AddMenuItem("Quit", "Stop focus-notifier")

		go func() {
			select {
			case <-quit.ClickedCh:
				logger.Info(ctx, "Quit requested from the tray menu")
				cancel()
			case <-ctx.Done():
			}
		}()

		go func() {
			done <- ready(ctx)

			systray.Quit()
		}()
	}

	systray.Run(onReady, cancel)

	if !started.Load() {
		return nil
	}

	return <-done
}

// imageFor returns the tray image of i: ICO on Windows, the large PNG elsewhere.
func imageFor(i focus.Icon, goos string) ([]byte, error) {
	set, err := icon.ForIcon(i)
	if err != nil {
		return nil, err
	}

	if goos != goosWindows {
		return set.Large, nil
	}

	data, err := set.ICO()
	if err != nil {
		return nil, fmt.Errorf("pack %s icon: %w", i, err)
	}

	return data, nil
}

func tooltip(i focus.Icon) string {
	if i == focus.IconAlert {
		return tooltipAlert
	}

	return tooltipNormal
}
