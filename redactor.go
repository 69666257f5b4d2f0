package obscura

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/google/uuid"

	"github.com/tsawler/obscura/compositor"
	"github.com/tsawler/obscura/detect"
	"github.com/tsawler/obscura/index"
	"github.com/tsawler/obscura/model"
	"github.com/tsawler/obscura/regions"
)

// ErrNoImage is returned by terminal operations when no source image was
// provided.
var ErrNoImage = errors.New("no source image")

// Redactor provides a fluent interface for redacting PII regions from an
// image. Each configuration method returns a new Redactor instance, making
// it safe for concurrent use and allowing method chaining.
type Redactor struct {
	// Inputs
	img      image.Image
	tokens   []model.RawToken
	entities []model.EntitySpan

	// Configuration
	options RedactOptions

	// Accumulated error (fail-fast)
	err error
}

// Result is the outcome of a redaction run.
type Result struct {
	// ID is a generated identifier for this run, for audit trails.
	ID string

	// Image is the redacted copy of the source image.
	Image image.Image

	// Regions are the final merged rectangles that were painted. No two
	// of them overlap.
	Regions []model.Rect

	// Entities are the per-entity resolution outcomes, in the order the
	// entities were applied.
	Entities []EntityResult
}

// EntityResult records how one entity span resolved, for audit and
// visualization by callers.
type EntityResult struct {
	// Kind is the entity's classification tag, passed through unchanged.
	Kind string

	// Text is the document text the span covered.
	Text string

	// Rects are the rectangles synthesized for the entity, before
	// cross-entity merging, one per visual line the entity touched.
	Rects []model.Rect
}

// clone creates a shallow copy of the Redactor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (r *Redactor) clone() *Redactor {
	newRed := &Redactor{
		img:      r.img,
		tokens:   r.tokens,
		entities: r.entities,
		options:  r.options.clone(),
		err:      r.err,
	}
	return newRed
}

// Tokens sets the OCR token sequence for the image.
func (r *Redactor) Tokens(tokens []model.RawToken) *Redactor {
	newRed := r.clone()
	newRed.tokens = tokens
	return newRed
}

// Entities sets the entity spans to redact, expressed as character ranges
// into the document text (see DocumentText).
func (r *Redactor) Entities(spans []model.EntitySpan) *Redactor {
	newRed := r.clone()
	newRed.entities = spans
	return newRed
}

// FillColor sets the color painted over redacted regions.
// Default is opaque black.
func (r *Redactor) FillColor(c color.Color) *Redactor {
	newRed := r.clone()
	newRed.options.fill = c
	return newRed
}

// MergeGap sets the maximum pixel gap between two rectangles for them to
// be merged into one painted region. Default is 0: only overlapping or
// touching rectangles merge.
func (r *Redactor) MergeGap(px int) *Redactor {
	newRed := r.clone()
	newRed.options.mergeGap = px
	return newRed
}

// Padding grows every synthesized rectangle by the given number of pixels
// on all sides before clamping to the image bounds. Default is 0.
func (r *Redactor) Padding(px int) *Redactor {
	newRed := r.clone()
	newRed.options.padding = px
	return newRed
}

// MinScore sets the minimum confidence an entity span needs to be
// redacted. Spans below the threshold are skipped with a warning.
// Default is 0 (redact everything).
func (r *Redactor) MinScore(score float64) *Redactor {
	newRed := r.clone()
	newRed.options.minScore = score
	return newRed
}

// Allow adds values to the allow list. An entity whose covered document
// text exactly matches an allow-listed value is skipped.
func (r *Redactor) Allow(values ...string) *Redactor {
	newRed := r.clone()
	newRed.options.allowList = append(newRed.options.allowList, values...)
	return newRed
}

// DetectWith runs the given detector over the reconstructed document text
// and uses the resulting spans as the entities to redact. This is a
// convenience for callers that do not talk to the analysis collaborator
// themselves.
func (r *Redactor) DetectWith(ctx context.Context, d detect.Detector) *Redactor {
	newRed := r.clone()
	if newRed.err != nil {
		return newRed
	}

	ix, _ := index.Build(newRed.tokens)
	spans, err := d.Detect(ctx, ix.DocumentText())
	if err != nil {
		newRed.err = err
		return newRed
	}

	newRed.entities = spans
	return newRed
}

// DocumentText returns the document text reconstructed from the token
// sequence: token texts joined with single spaces in reading order. This
// is the coordinate space entity span offsets refer to, and the text a
// caller hands to the analysis collaborator.
func (r *Redactor) DocumentText() (string, []Warning, error) {
	if r.err != nil {
		return "", nil, r.err
	}
	ix, warnings := index.Build(r.tokens)
	return ix.DocumentText(), warnings, nil
}

// Redact resolves every entity span against the token sequence, merges
// the resulting rectangles, and paints them onto a copy of the source
// image. The source image is never modified.
//
// Per-span and per-token anomalies (out-of-range offsets, malformed
// geometry, spans touching no visible text) are clamped or dropped and
// reported as warnings; they never abort the run. Only structural
// failures, such as a missing source image, return an error.
func (r *Redactor) Redact() (*Result, []Warning, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	if r.img == nil {
		return nil, nil, ErrNoImage
	}

	ix, warnings := index.Build(r.tokens)

	spans, filterWarnings := filterSpans(r.entities, r.options.minScore)
	warnings = append(warnings, filterWarnings...)

	var all []model.Rect
	var entityResults []EntityResult

	for _, span := range spans {
		tokens := index.Resolve(ix, span)
		if len(tokens) == 0 {
			// No visible text to redact. Covers empty spans, spans that fall
			// entirely inside a synthetic separator, and spans clamped away.
			warnings = append(warnings, model.Warningf(model.WarnNoVisibleText,
				"span %s [%d,%d) matched no token", span.Kind, span.Start, span.End))
			continue
		}

		covered := index.CoveredText(ix, span)
		if r.allowListed(covered) {
			warnings = append(warnings, model.Warningf(model.WarnAllowListed,
				"span %s %q is allow-listed", span.Kind, covered))
			continue
		}

		rects := regions.Synthesize(tokens)
		if pad := r.options.padding; pad > 0 {
			for i := range rects {
				rects[i] = rects[i].Expand(pad)
			}
		}

		entityResults = append(entityResults, EntityResult{
			Kind:  span.Kind,
			Text:  covered,
			Rects: rects,
		})
		all = append(all, rects...)
	}

	out, final := compositor.Redact(r.img, all, compositor.Config{
		Fill:     r.options.fill,
		MergeGap: r.options.mergeGap,
	})

	return &Result{
		ID:       uuid.NewString(),
		Image:    out,
		Regions:  final,
		Entities: entityResults,
	}, warnings, nil
}

// allowListed reports whether the covered text exactly matches an
// allow-listed value.
func (r *Redactor) allowListed(text string) bool {
	for _, v := range r.options.allowList {
		if text == v {
			return true
		}
	}
	return false
}

// filterSpans drops spans below the confidence threshold, exact-duplicate
// spans, and spans wholly contained in another span. For identical ranges
// the higher score wins, earliest submission breaking ties. Relative input
// order of the surviving spans is preserved.
func filterSpans(spans []model.EntitySpan, minScore float64) ([]model.EntitySpan, []model.Warning) {
	var warnings []model.Warning

	eligible := make([]model.EntitySpan, 0, len(spans))
	for _, s := range spans {
		if s.Score < minScore {
			warnings = append(warnings, model.Warningf(model.WarnLowScore,
				"span %s [%d,%d) score %.2f below threshold %.2f",
				s.Kind, s.Start, s.End, s.Score, minScore))
			continue
		}
		eligible = append(eligible, s)
	}

	out := make([]model.EntitySpan, 0, len(eligible))
	for i, s := range eligible {
		drop := false
		for j, o := range eligible {
			if i == j || !o.Contains(s) {
				continue
			}
			if o.SameRange(s) {
				if o.Score > s.Score || (o.Score == s.Score && j < i) {
					drop = true
					break
				}
			} else {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, s)
		}
	}

	return out, warnings
}
