package model

import "fmt"

// Warning codes for non-fatal anomalies.
const (
	WarnBlankToken    = "blank-token"
	WarnBadGeometry   = "bad-geometry"
	WarnSpanClamped   = "span-clamped"
	WarnEmptySpan     = "empty-span"
	WarnNoVisibleText = "no-visible-text"
	WarnLowScore      = "low-score"
	WarnAllowListed   = "allow-listed"
)

// Warning describes a non-fatal anomaly encountered while processing an
// image. Per-token and per-span anomalies never abort processing; they are
// clamped or dropped and reported as warnings instead.
type Warning struct {
	// Code identifies the anomaly class (one of the Warn* constants).
	Code string

	// Message is a human-readable description.
	Message string
}

// Warningf creates a warning with a formatted message.
func Warningf(code, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
