// Package notifier implements the focus-notifier process: it polls the
// status source on a schedule and drives the blink controller.
package notifier
