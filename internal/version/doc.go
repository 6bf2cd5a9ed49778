// Package version exposes build metadata shared by the focus-beacon binaries.
//
// Version, Commit and BuildTime are injected with -ldflags "-X ..." and keep
// their placeholders in local builds.
package version
