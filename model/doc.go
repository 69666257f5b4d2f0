// Package model provides the shared data model for the redaction engine.
//
// It defines the geometric primitives and the token/span types that flow
// between the engine's components. All coordinates are integer pixel
// coordinates in image space: the origin is the top-left corner and Y grows
// downward.
//
// # Tokens
//
// A [RawToken] is one text fragment as delivered by an OCR collaborator:
// recognized text, a pixel bounding box, and a line identifier grouping
// tokens that share a visual text line. The index package normalizes raw
// tokens into [Token] values carrying their half-open character range in
// the reconstructed document text.
//
// # Entity spans
//
// An [EntitySpan] is one detected PII occurrence expressed as a character
// range into the document text. The Kind tag is opaque to the engine: the
// set of recognizable kinds is owned by the external analyzer and may grow
// independently.
//
// # Geometry
//
// [Rect] supports the union, intersection, and adjacency calculations the
// engine needs to turn token boxes into merged redaction regions.
package model
