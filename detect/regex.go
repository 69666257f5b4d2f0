package detect

import (
	"context"
	"regexp"
	"sort"

	"github.com/tsawler/obscura/model"
)

// Pattern couples a compiled expression with the score reported for its
// matches.
type Pattern struct {
	Expr  *regexp.Regexp
	Score float64
}

// DefaultPatterns returns the built-in per-kind patterns. Kind names follow
// the conventional analyzer vocabulary but remain opaque to the engine.
func DefaultPatterns() map[string]Pattern {
	return map[string]Pattern{
		"EMAIL_ADDRESS": {
			Expr:  regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			Score: 0.9,
		},
		"PHONE_NUMBER": {
			Expr:  regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
			Score: 0.6,
		},
		"US_SSN": {
			Expr:  regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			Score: 0.85,
		},
		"CREDIT_CARD": {
			Expr:  regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
			Score: 0.7,
		},
		"IP_ADDRESS": {
			Expr:  regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			Score: 0.6,
		},
		"ZIP_CODE": {
			Expr:  regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),
			Score: 0.4,
		},
	}
}

// RegexDetector scans document text with a fixed set of per-kind regular
// expressions. It is safe for concurrent use.
type RegexDetector struct {
	patterns map[string]Pattern
}

// NewRegexDetector creates a detector using the built-in patterns.
func NewRegexDetector() *RegexDetector {
	return &RegexDetector{patterns: DefaultPatterns()}
}

// NewRegexDetectorWithPatterns creates a detector using the given patterns.
func NewRegexDetectorWithPatterns(patterns map[string]Pattern) *RegexDetector {
	return &RegexDetector{patterns: patterns}
}

// Name returns the detector's identifier ("regex").
func (d *RegexDetector) Name() string {
	return "regex"
}

// Detect returns every pattern match as an entity span. Kinds are scanned
// in sorted order so output is deterministic for identical input.
func (d *RegexDetector) Detect(ctx context.Context, text string) ([]model.EntitySpan, error) {
	kinds := make([]string, 0, len(d.patterns))
	for kind := range d.patterns {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var spans []model.EntitySpan
	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := d.patterns[kind]
		for _, m := range p.Expr.FindAllStringIndex(text, -1) {
			spans = append(spans, model.EntitySpan{
				Kind:  kind,
				Start: m[0],
				End:   m[1],
				Score: p.Score,
			})
		}
	}

	return spans, nil
}

// Close is a no-op for the regex detector.
func (d *RegexDetector) Close() error {
	return nil
}
