// Package icon holds the embedded Normal and Alert icon images.
package icon
