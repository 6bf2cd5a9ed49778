// Package render groups the surfaces the blink controller can draw on:
// the system tray (tray), the terminal status line (console) and the log
// (logrender).
package render
