// Package detect defines the boundary with the PII-analysis collaborator.
//
// The redaction engine supplies reconstructed document text to a
// [Detector] and receives back entity spans in document-text coordinates.
// Entity kinds are opaque strings owned by the analyzer; the engine only
// passes them through for audit and labeling.
//
// A regex-based reference detector is included for workflows without an
// external analyzer. Production systems typically substitute an
// NER-model-backed implementation behind the same interface.
package detect

import (
	"context"

	"github.com/tsawler/obscura/model"
)

// Detector locates PII entities in document text.
type Detector interface {
	// Name returns the detector's identifier.
	Name() string

	// Detect returns the entity spans found in text, as byte-offset
	// ranges into text. Span order is unspecified.
	Detect(ctx context.Context, text string) ([]model.EntitySpan, error)

	// Close releases any resources held by the detector.
	Close() error
}
