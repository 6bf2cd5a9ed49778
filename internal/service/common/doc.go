// Package common holds helpers shared by several services.
//
// It provides the FocusService gRPC client with call timeouts, the HTTP
// status poller used by the notifier, the single-instance guard and actor
// detection for audit logs.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
