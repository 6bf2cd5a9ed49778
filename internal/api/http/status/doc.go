// Package status serves the focus status over plain HTTP for pollers.
package status
