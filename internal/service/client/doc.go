// Package client implements focus-mark: it publishes the distraction signal
// to the focus server and prints the current status.
package client
