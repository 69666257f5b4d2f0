package model

// RawToken is one OCR-recognized text fragment as delivered by the OCR
// collaborator, before index normalization.
type RawToken struct {
	// Text is the recognized text of the fragment.
	Text string

	// Box is the fragment's bounding box in image pixel coordinates.
	Box Rect

	// LineID groups tokens that share a visual text line. Values must sort
	// in reading order (top line first).
	LineID int

	// Confidence is the OCR engine's recognition confidence, when known.
	// Zero means not reported.
	Confidence float64
}

// Token is a normalized OCR token owned by a token index. It carries the
// half-open character range [StartOffset, EndOffset) the token occupies in
// the reconstructed document text. Tokens are immutable once built.
type Token struct {
	Text        string
	Box         Rect
	LineID      int
	StartOffset int
	EndOffset   int
}

// EntitySpan is one detected PII occurrence expressed as a half-open
// character range [Start, End) into the reconstructed document text.
type EntitySpan struct {
	// Kind is the classification tag (e.g. PERSON, EMAIL_ADDRESS). It is
	// opaque to the engine and passed through for audit and labeling.
	Kind string

	Start int
	End   int

	// Score is the analyzer's detection confidence, when known.
	Score float64
}

// Contains reports whether the span's range fully contains the other
// span's range.
func (s EntitySpan) Contains(other EntitySpan) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// SameRange reports whether both spans cover the identical character range.
func (s EntitySpan) SameRange(other EntitySpan) bool {
	return s.Start == other.Start && s.End == other.End
}
