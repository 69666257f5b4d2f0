package index

import "github.com/tsawler/obscura/model"

// Resolve finds the contiguous set of tokens an entity span overlaps,
// including partial-token overlaps at either edge.
//
// Offsets are clamped to [0, len(document text)] before lookup; analyzer
// offsets may be approximate and must not cause a failure. A span that is
// empty after clamping, or that touches no token, resolves to nil — the
// caller treats that as "no visible text to redact".
func Resolve(ix *TokenIndex, span model.EntitySpan) []model.Token {
	if ix == nil {
		return nil
	}

	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if n := len(ix.docText); end > n {
		end = n
	}
	if start >= end {
		return nil
	}

	return ix.TokensOverlapping(start, end)
}

// CoveredText returns the document text covered by the span after
// clamping. Used for allow-list checks and audit labeling.
func CoveredText(ix *TokenIndex, span model.EntitySpan) string {
	if ix == nil {
		return ""
	}

	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if n := len(ix.docText); end > n {
		end = n
	}
	if start >= end {
		return ""
	}

	return ix.docText[start:end]
}
