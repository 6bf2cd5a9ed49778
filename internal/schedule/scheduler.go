package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/focus-beacon/internal/logger"
)

// Trigger describes a recurring named trigger.
type Trigger struct {
	// Name identifies the trigger; at most one trigger per name runs.
	Name string
	// Delay is the wait before the first fire. Zero fires immediately.
	Delay time.Duration
	// Period is the interval between fires after the first one.
	Period time.Duration
}

// Func is invoked on every fire. Fires of one trigger never overlap:
// ticks that arrive while Func is still running are dropped.
type Func func(ctx context.Context)

var (
	// ErrClosed is returned when registering on a closed scheduler.
	ErrClosed = errors.New("scheduler is closed")
	// errEmptyName is returned for a trigger without a name.
	errEmptyName = errors.New("trigger name must be provided")
	// errInvalidPeriod is returned for a non-positive period.
	errInvalidPeriod = errors.New("trigger period must be positive")
	// errNegativeDelay is returned for a negative delay.
	errNegativeDelay = errors.New("trigger delay must not be negative")
)

// Scheduler owns a set of running triggers.
type Scheduler struct {
	// entries maps trigger names to running triggers.
	entries map[string]*entry
	// wg tracks trigger goroutines.
	wg sync.WaitGroup
	// mu protects entries and closed.
	mu sync.Mutex
	// closed is set by Close.
	closed bool
}

// entry is one running trigger.
type entry struct {
	// trigger is the registered definition.
	trigger Trigger
	// cancel stops the trigger goroutine.
	cancel context.CancelFunc
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		entries: make(map[string]*entry),
	}
}

// Ensure registers trigger and starts it unless a trigger with the same name
// is already registered. It reports whether a new trigger was created.
// The trigger stops when ctx is canceled, when it is canceled by name or
// when the scheduler is closed.
func (s *Scheduler) Ensure(ctx context.Context, trigger Trigger, fn Func) (bool, error) {
	if err := validate(trigger); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	if _, found := s.entries[trigger.Name]; found {
		return false, nil
	}

	runCtx, cancel := context.WithCancel(logger.WithKV(ctx, "trigger", trigger.Name))
	e := &entry{
		trigger: trigger,
		cancel:  cancel,
	}
	s.entries[trigger.Name] = e

	s.wg.Go(func() {
		defer s.forget(e)

		run(runCtx, trigger, fn)
	})

	return true, nil
}

// Get returns the registered trigger with the provided name.
func (s *Scheduler) Get(name string) (Trigger, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[name]
	if !found {
		return Trigger{}, false
	}

	return e.trigger, true
}

// Cancel stops the named trigger. It reports whether the trigger existed.
func (s *Scheduler) Cancel(name string) bool {
	s.mu.Lock()
	e, found := s.entries[name]

	if found {
		delete(s.entries, name)
	}
	s.mu.Unlock()

	if found {
		e.cancel()
	}

	return found
}

// Close stops every trigger and waits for in-flight fires to return.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true

	for name, e := range s.entries {
		e.cancel()
		delete(s.entries, name)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// forget removes e from the registry if it is still the registered entry.
func (s *Scheduler) forget(e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, found := s.entries[e.trigger.Name]; found && current == e {
		delete(s.entries, e.trigger.Name)
	}

	e.cancel()
}

// run fires fn after the delay and then on every period until ctx is done.
func run(ctx context.Context, trigger Trigger, fn Func) {
	timer := time.NewTimer(trigger.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		fn(ctx)
	}

	ticker := time.NewTicker(trigger.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug(ctx, "Trigger stopped")
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// validate checks a trigger definition.
func validate(trigger Trigger) error {
	switch {
	case trigger.Name == "":
		return errEmptyName
	case trigger.Period <= 0:
		return fmt.Errorf("%s: %w", trigger.Name, errInvalidPeriod)
	case trigger.Delay < 0:
		return fmt.Errorf("%s: %w", trigger.Name, errNegativeDelay)
	default:
		return nil
	}
}
