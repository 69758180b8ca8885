// Package stats exposes execution statistics from tange schedulers as
// OpenTelemetry metric instruments
package stats
