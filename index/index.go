package index

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/obscura/model"
)

// TokenIndex holds the normalized tokens for one image and the document
// text reconstructed from them. It is built once per image and read-only
// thereafter.
type TokenIndex struct {
	tokens  []model.Token
	docText string
}

// Build constructs a TokenIndex from raw OCR output.
//
// Normalization steps, in order:
//   - token text is NFC-normalized
//   - tokens with blank text are dropped
//   - negative box extents are clamped to zero
//   - tokens are re-sorted by (LineID, Box.X); input ordering from the OCR
//     collaborator is not trusted
//
// The document text is the token texts joined with single ASCII spaces in
// reading order. Every anomaly is reported as a warning; Build never fails.
func Build(raw []model.RawToken) (*TokenIndex, []model.Warning) {
	var warnings []model.Warning

	sorted := make([]model.RawToken, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].LineID != sorted[j].LineID {
			return sorted[i].LineID < sorted[j].LineID
		}
		return sorted[i].Box.X < sorted[j].Box.X
	})

	tokens := make([]model.Token, 0, len(sorted))
	var sb strings.Builder

	for _, rt := range sorted {
		text := norm.NFC.String(rt.Text)
		if strings.TrimSpace(text) == "" {
			warnings = append(warnings, model.Warningf(model.WarnBlankToken,
				"dropped blank token at (%d,%d)", rt.Box.X, rt.Box.Y))
			continue
		}

		box := rt.Box.Canon()
		if box != rt.Box {
			warnings = append(warnings, model.Warningf(model.WarnBadGeometry,
				"clamped negative extent on token %q", text))
		}

		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		start := sb.Len()
		sb.WriteString(text)

		tokens = append(tokens, model.Token{
			Text:        text,
			Box:         box,
			LineID:      rt.LineID,
			StartOffset: start,
			EndOffset:   sb.Len(),
		})
	}

	return &TokenIndex{tokens: tokens, docText: sb.String()}, warnings
}

// DocumentText returns the reconstructed document text. It is the
// coordinate space shared with the analysis collaborator.
func (ix *TokenIndex) DocumentText() string {
	if ix == nil {
		return ""
	}
	return ix.docText
}

// Tokens returns the normalized tokens in reading order. The returned
// slice must not be modified.
func (ix *TokenIndex) Tokens() []model.Token {
	if ix == nil {
		return nil
	}
	return ix.tokens
}

// Len returns the number of tokens in the index.
func (ix *TokenIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.tokens)
}

// TokensOverlapping returns every token whose half-open offset range
// intersects [start, end), in ascending offset order, including tokens
// only partially covered. A span that touches no token's range (for
// example one falling entirely inside the synthetic separator between two
// tokens, or an empty span) yields nil.
func (ix *TokenIndex) TokensOverlapping(start, end int) []model.Token {
	if ix == nil || start >= end || len(ix.tokens) == 0 {
		return nil
	}

	// First token whose range can still intersect the query.
	i := sort.Search(len(ix.tokens), func(i int) bool {
		return ix.tokens[i].EndOffset > start
	})

	var out []model.Token
	for ; i < len(ix.tokens) && ix.tokens[i].StartOffset < end; i++ {
		out = append(out, ix.tokens[i])
	}
	return out
}
