package blink

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/focus-beacon/internal/blink/blinktest"
	"github.com/oshokin/focus-beacon/internal/domain/focus"
)

const (
	testInterval = 300 * time.Millisecond
	testDuration = 2100 * time.Millisecond
)

var errRenderFailed = errors.New("icon asset failed to apply")

// renderCall is one recorded Render invocation.
type renderCall = blinktest.Call

// at builds a renderCall from milliseconds for readable expectations.
func at(ms int, icon focus.Icon) renderCall {
	return blinktest.At(ms, icon)
}

// newRecordingRenderer creates a renderer on the bubble's virtual clock.
func newRecordingRenderer() *blinktest.Recorder {
	return blinktest.NewRecorder()
}

// newTestController creates a controller with the reference cadence.
func newTestController(r Renderer) *Controller {
	return New(context.Background(), r, Options{
		Interval: testInterval,
		Duration: testDuration,
	})
}

// requireIdle asserts that the controller is at rest with no timers pending.
func requireIdle(t *testing.T, c *Controller) {
	t.Helper()

	snapshot := c.Snapshot()
	require.False(t, snapshot.Blinking)
	require.Equal(t, focus.IconNormal, snapshot.Icon)
	require.False(t, snapshot.PendingToggle)
	require.False(t, snapshot.PendingExpiry)
}

// requireAlternating asserts that consecutive renders never repeat an icon.
func requireAlternating(t *testing.T, calls []renderCall) {
	t.Helper()

	for i := 1; i < len(calls); i++ {
		require.NotEqual(t, calls[i-1].Icon, calls[i].Icon, "render %d at %s repeats the previous icon", i, calls[i].At)
	}
}

// TestController_SingleReportBlinksThenExpires checks the reference timeline of one distracted report.
func TestController_SingleReportBlinksThenExpires(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		time.Sleep(10 * time.Second)
		synctest.Wait()

		want := []renderCall{
			at(0, focus.IconAlert),
			at(300, focus.IconNormal),
			at(600, focus.IconAlert),
			at(900, focus.IconNormal),
			at(1200, focus.IconAlert),
			at(1500, focus.IconNormal),
			at(1800, focus.IconAlert),
			at(2100, focus.IconNormal),
		}

		require.Equal(t, want, r.Calls())
		requireIdle(t, c)
	})
}

// TestController_NaturalExpiry verifies the session is alive right before the duration and gone at it.
func TestController_NaturalExpiry(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		snapshot := c.Snapshot()
		require.True(t, snapshot.Blinking)
		require.Equal(t, focus.IconAlert, snapshot.Icon)
		require.True(t, snapshot.PendingToggle)
		require.True(t, snapshot.PendingExpiry)
		require.True(t, r.Start().Add(testDuration).Equal(snapshot.ExpiresAt))

		time.Sleep(testDuration - time.Millisecond)
		synctest.Wait()
		require.True(t, c.Snapshot().Blinking)

		time.Sleep(time.Millisecond)
		synctest.Wait()
		requireIdle(t, c)
	})
}

// TestController_SecondReportResetsExpiry checks that a refresh re-arms both timers without a render.
func TestController_SecondReportResetsExpiry(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		time.Sleep(time.Second)
		synctest.Wait()

		rendersBefore := len(r.Calls())
		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		// Refreshing does not render.
		require.Len(t, r.Calls(), rendersBefore)
		require.True(t, r.Start().Add(time.Second+testDuration).Equal(c.Snapshot().ExpiresAt))

		time.Sleep(10 * time.Second)
		synctest.Wait()

		want := []renderCall{
			at(0, focus.IconAlert),
			at(300, focus.IconNormal),
			at(600, focus.IconAlert),
			at(900, focus.IconNormal),
			// Re-armed at 1000 while showing Normal.
			at(1300, focus.IconAlert),
			at(1600, focus.IconNormal),
			at(1900, focus.IconAlert),
			at(2200, focus.IconNormal),
			at(2500, focus.IconAlert),
			at(2800, focus.IconNormal),
			// Forced by expiry.
			at(3100, focus.IconNormal),
		}

		require.Equal(t, want, r.Calls())
		requireIdle(t, c)
	})
}

// TestController_BurstKeepsBlinking ensures repeated reports faster than the duration never let the session expire.
func TestController_BurstKeepsBlinking(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		for range 10 {
			c.OnStatusReport(context.Background(), focus.ReportDistracted)

			time.Sleep(time.Second)
			synctest.Wait()

			require.True(t, c.Snapshot().Blinking)
		}

		// Last report was at 9s; the session ends 2.1s later.
		time.Sleep(10 * time.Second)
		synctest.Wait()

		calls := r.Calls()
		last := calls[len(calls)-1]
		require.Equal(t, at(11100, focus.IconNormal), last)

		requireAlternating(t, calls[:len(calls)-1])

		for _, call := range calls[:len(calls)-1] {
			require.Less(t, call.At, 11100*time.Millisecond)
		}

		requireIdle(t, c)
	})
}

// TestController_InterruptCancelsTimers checks that a non-distracted report stops everything synchronously.
func TestController_InterruptCancelsTimers(t *testing.T) {
	t.Parallel()

	for _, report := range []focus.Report{focus.ReportNotDistracted, focus.ReportUnavailable} {
		t.Run(report.String(), func(t *testing.T) {
			t.Parallel()

			synctest.Test(t, func(t *testing.T) {
				r := newRecordingRenderer()
				c := newTestController(r)

				c.OnStatusReport(context.Background(), focus.ReportDistracted)
				c.OnStatusReport(context.Background(), report)

				want := []renderCall{
					at(0, focus.IconAlert),
					at(0, focus.IconNormal),
				}

				require.Equal(t, want, r.Calls())
				requireIdle(t, c)

				// No stray toggle or expiry fires afterwards.
				time.Sleep(10 * time.Second)
				synctest.Wait()

				require.Equal(t, want, r.Calls())
			})
		})
	}
}

// TestController_InterruptMidSession stops a session between ticks.
func TestController_InterruptMidSession(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		time.Sleep(1000 * time.Millisecond)
		synctest.Wait()

		c.OnStatusReport(context.Background(), focus.ReportNotDistracted)

		time.Sleep(10 * time.Second)
		synctest.Wait()

		want := []renderCall{
			at(0, focus.IconAlert),
			at(300, focus.IconNormal),
			at(600, focus.IconAlert),
			at(900, focus.IconNormal),
			at(1000, focus.IconNormal),
		}

		require.Equal(t, want, r.Calls())
		requireIdle(t, c)
	})
}

// TestController_RestStateIsIdempotent verifies that idle reports always render Normal and arm nothing.
func TestController_RestStateIsIdempotent(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		reports := []focus.Report{
			focus.ReportNotDistracted,
			focus.ReportUnavailable,
			focus.ReportUnavailable,
			focus.ReportNotDistracted,
		}

		for i, report := range reports {
			c.OnStatusReport(context.Background(), report)

			calls := r.Calls()
			require.Len(t, calls, i+1)
			require.Equal(t, focus.IconNormal, calls[i].Icon)
			requireIdle(t, c)
		}

		time.Sleep(10 * time.Second)
		synctest.Wait()
		require.Len(t, r.Calls(), len(reports))
	})
}

// TestController_ReportCoincidingWithTick checks coherence when a refresh lands on the same instant as a tick.
func TestController_ReportCoincidingWithTick(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		// The second tick is also due at 600ms; either may run first.
		time.Sleep(600 * time.Millisecond)
		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		time.Sleep(10 * time.Second)
		synctest.Wait()

		calls := r.Calls()
		require.Equal(t, at(2700, focus.IconNormal), calls[len(calls)-1])
		requireAlternating(t, calls[:len(calls)-1])

		atSixHundred := 0

		for _, call := range calls {
			if call.At == 600*time.Millisecond {
				atSixHundred++
			}
		}

		require.LessOrEqual(t, atSixHundred, 1)
		requireIdle(t, c)
	})
}

// TestController_ConcurrentReportsKeepSingleSession hammers the controller from several goroutines and
// checks that toggle and expiry timers are pending exactly while a session is active.
func TestController_ConcurrentReportsKeepSingleSession(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		var wg sync.WaitGroup

		for worker := range 4 {
			wg.Go(func() {
				rng := rand.New(rand.NewPCG(uint64(worker), 42)) //nolint:gosec // Deterministic test input.
				reports := []focus.Report{
					focus.ReportDistracted,
					focus.ReportDistracted,
					focus.ReportNotDistracted,
					focus.ReportUnavailable,
				}

				for range 50 {
					c.OnStatusReport(context.Background(), reports[rng.IntN(len(reports))])
					time.Sleep(time.Duration(rng.IntN(700)) * time.Millisecond)
				}
			})
		}

		wg.Go(func() {
			for range 400 {
				snapshot := c.Snapshot()
				assert.Equal(t, snapshot.Blinking, snapshot.PendingToggle)
				assert.Equal(t, snapshot.Blinking, snapshot.PendingExpiry)

				time.Sleep(37 * time.Millisecond)
			}
		})

		wg.Wait()

		c.OnStatusReport(context.Background(), focus.ReportNotDistracted)
		stoppedAt := time.Since(r.Start())

		time.Sleep(10 * time.Second)
		synctest.Wait()

		calls := r.Calls()
		require.Equal(t, renderCall{At: stoppedAt, Icon: focus.IconNormal}, calls[len(calls)-1])
		requireIdle(t, c)
	})
}

// TestController_RenderErrorsDoNotChangeState ensures a failing renderer still sees the full timeline.
func TestController_RenderErrorsDoNotChangeState(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		r.FailWith(errRenderFailed)
		c := newTestController(r)

		c.OnStatusReport(context.Background(), focus.ReportDistracted)

		time.Sleep(10 * time.Second)
		synctest.Wait()

		require.Len(t, r.Calls(), 8)
		requireIdle(t, c)
	})
}

// TestController_ResetStopsSession checks that Reset behaves like an interrupt and also renders when idle.
func TestController_ResetStopsSession(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		r := newRecordingRenderer()
		c := newTestController(r)

		c.Reset(context.Background())
		require.Equal(t, []renderCall{at(0, focus.IconNormal)}, r.Calls())

		c.OnStatusReport(context.Background(), focus.ReportDistracted)
		c.Reset(context.Background())

		time.Sleep(10 * time.Second)
		synctest.Wait()

		want := []renderCall{
			at(0, focus.IconNormal),
			at(0, focus.IconAlert),
			at(0, focus.IconNormal),
		}

		require.Equal(t, want, r.Calls())
		requireIdle(t, c)
	})
}

// TestNew_DefaultsCadence verifies that zero options fall back to the default cadence.
func TestNew_DefaultsCadence(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var renders atomic.Int32

		c := New(context.Background(), RendererFunc(func(context.Context, focus.Icon) error {
			renders.Add(1)
			return nil
		}), Options{})

		c.OnStatusReport(context.Background(), focus.ReportDistracted)
		require.True(t, time.Now().Add(DefaultDuration).Equal(c.Snapshot().ExpiresAt))

		time.Sleep(10 * time.Second)
		synctest.Wait()

		// Alert, six toggles, forced Normal.
		require.EqualValues(t, 8, renders.Load())
	})
}
