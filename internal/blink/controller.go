package blink

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
)

const (
	// DefaultInterval is the default icon toggle period.
	DefaultInterval = 300 * time.Millisecond
	// DefaultDuration is the default length of a blink session.
	DefaultDuration = 2100 * time.Millisecond
)

// Renderer applies an icon to the UI surface.
// Implementations log their own failures; the controller ignores the error.
type Renderer interface {
	Render(ctx context.Context, icon focus.Icon) error
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(ctx context.Context, icon focus.Icon) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, icon focus.Icon) error {
	return f(ctx, icon)
}

// Options configures the blink cadence. Zero values take the defaults.
type Options struct {
	// Interval is the toggle period.
	Interval time.Duration
	// Duration is how long a session lasts after its latest (re)arm.
	Duration time.Duration
}

// Snapshot is a point-in-time view of the controller.
type Snapshot struct {
	// Blinking is true while a session is active.
	Blinking bool
	// Icon is the last rendered icon.
	Icon focus.Icon
	// ExpiresAt is when the active session ends unless refreshed.
	ExpiresAt time.Time
	// PendingToggle is true while a toggle timer is armed.
	PendingToggle bool
	// PendingExpiry is true while an expiry timer is armed.
	PendingExpiry bool
}

// Controller is the blink state machine. It is safe for concurrent use:
// reports, toggle ticks and expiries are serialized by one mutex.
type Controller struct {
	// ctx scopes logging and rendering for timer-driven transitions.
	ctx context.Context //nolint:containedctx // Timer callbacks have no caller context.
	// renderer receives every icon change.
	renderer Renderer
	// interval is the toggle period.
	interval time.Duration
	// duration is the session length.
	duration time.Duration

	// mu serializes all transitions.
	mu sync.Mutex
	// session is the single blink session.
	session session
	// icon is the last rendered icon.
	icon focus.Icon
}

// New creates an Idle controller. It renders nothing until the first report
// or Reset; callers render the initial Normal icon with Reset.
func New(ctx context.Context, renderer Renderer, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}

	return &Controller{
		ctx:      logger.WithName(ctx, "blink"),
		renderer: renderer,
		interval: opts.Interval,
		duration: opts.Duration,
		icon:     focus.IconNormal,
	}
}

// OnStatusReport feeds one poll result into the state machine.
// It may be called at any time and at any rate.
func (c *Controller) OnStatusReport(ctx context.Context, report focus.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if report == focus.ReportDistracted {
		c.startOrExtendLocked(ctx)
		return
	}

	c.stopLocked(ctx, report.String())
}

// Reset forces the controller to Idle and renders Normal.
// It is used for the initial icon on start and to clean up on shutdown.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked(ctx, "reset")
}

// Snapshot returns the current state of the controller.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Blinking:      c.session.active,
		Icon:          c.icon,
		ExpiresAt:     c.session.expiresAt,
		PendingToggle: c.session.toggle.pending(),
		PendingExpiry: c.session.expiry.pending(),
	}
}

// startOrExtendLocked starts a session or refreshes the running one.
func (c *Controller) startOrExtendLocked(ctx context.Context) {
	if c.session.active {
		c.armLocked()
		logger.DebugKV(ctx, "Blink session extended", "expires_at", c.session.expiresAt)

		return
	}

	c.session.active = true
	c.session.phase = focus.IconAlert
	c.renderLocked(ctx, focus.IconAlert)
	c.armLocked()

	logger.DebugKV(ctx, "Blink session started", "expires_at", c.session.expiresAt)
}

// stopLocked ends the session if any and renders Normal.
func (c *Controller) stopLocked(ctx context.Context, reason string) {
	if c.session.active {
		c.session.release()
		logger.DebugKV(ctx, "Blink session interrupted", "reason", reason)
	}

	c.renderLocked(ctx, focus.IconNormal)
}

// armLocked (re)arms both timers from now. Each arm releases the previous
// timer of its role first.
func (c *Controller) armLocked() {
	now := time.Now()

	c.session.armedAt = now
	c.session.expiresAt = now.Add(c.duration)
	c.session.ticks = 0

	c.session.toggle.arm(c.interval, c.onToggle)
	c.session.expiry.arm(c.duration, c.onExpiry)
}

// onToggle flips the icon and schedules the next tick on the fixed cadence.
// A tick due at or after the expiry instant ends the session instead, so the
// two never produce two renders for one instant.
func (c *Controller) onToggle(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.active || !c.session.toggle.claim(generation) {
		return
	}

	if !time.Now().Before(c.session.expiresAt) {
		c.expireLocked()
		return
	}

	c.session.ticks++
	c.session.phase = c.session.phase.Flip()
	c.renderLocked(c.ctx, c.session.phase)

	next := c.session.armedAt.Add(time.Duration(c.session.ticks+1) * c.interval)
	c.session.toggle.arm(time.Until(next), c.onToggle)
}

// onExpiry ends the session when its expiry timer fires unsuppressed.
func (c *Controller) onExpiry(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.active || !c.session.expiry.claim(generation) {
		return
	}

	c.expireLocked()
}

// expireLocked ends the session naturally and renders Normal.
func (c *Controller) expireLocked() {
	c.session.release()
	logger.Debug(c.ctx, "Blink session expired")
	c.renderLocked(c.ctx, focus.IconNormal)
}

// renderLocked records and applies icon. Render errors are reported by the
// renderer and do not affect the state machine.
func (c *Controller) renderLocked(ctx context.Context, icon focus.Icon) {
	c.icon = icon
	_ = c.renderer.Render(ctx, icon)
}
