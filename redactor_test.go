package obscura

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/tsawler/obscura/detect"
	"github.com/tsawler/obscura/model"
)

func newTestImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x * y), A: 255})
		}
	}
	return img
}

func nameTokens() []model.RawToken {
	return []model.RawToken{
		{Text: "John", Box: model.NewRect(0, 0, 40, 10), LineID: 1},
		{Text: "Smith", Box: model.NewRect(45, 0, 50, 10), LineID: 1},
	}
}

func TestRedactFullNameOneLine(t *testing.T) {
	// An entity covering both words on one line resolves to their union.
	result, warnings, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "PERSON", Start: 0, End: 10}}).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(result.Regions) != 1 {
		t.Fatalf("regions = %+v, want exactly one", result.Regions)
	}
	if want := model.NewRect(0, 0, 95, 10); result.Regions[0] != want {
		t.Errorf("region = %+v, want %+v", result.Regions[0], want)
	}

	if len(result.Entities) != 1 {
		t.Fatalf("entity results = %+v, want one", result.Entities)
	}
	if result.Entities[0].Kind != "PERSON" || result.Entities[0].Text != "John Smith" {
		t.Errorf("entity result = %+v, want PERSON %q", result.Entities[0], "John Smith")
	}
	if result.ID == "" {
		t.Error("result ID is empty")
	}
}

func TestRedactPartialSpanLeavesNeighborUntouched(t *testing.T) {
	// Only "John" is sensitive; "Smith" stays visible.
	src := newTestImage(120, 40)
	result, _, err := FromImage(src).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "FIRST_NAME", Start: 0, End: 4}}).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 1 {
		t.Fatalf("regions = %+v, want one", result.Regions)
	}
	if want := model.NewRect(0, 0, 40, 10); result.Regions[0] != want {
		t.Errorf("region = %+v, want %+v", result.Regions[0], want)
	}

	// A pixel inside "Smith" must equal the source exactly.
	out := result.Image.(*image.RGBA)
	if got, want := out.RGBAAt(60, 5), src.RGBAAt(60, 5); got != want {
		t.Errorf("pixel in Smith's box changed: %+v, want %+v", got, want)
	}
}

func TestRedactSpanCrossingLines(t *testing.T) {
	// An address wrapping across two printed lines gets one rectangle per
	// line, never one box spanning the inter-line gap.
	tokens := []model.RawToken{
		{Text: "12", Box: model.NewRect(100, 0, 20, 10), LineID: 1},
		{Text: "Main", Box: model.NewRect(125, 0, 35, 10), LineID: 1},
		{Text: "Springfield", Box: model.NewRect(0, 30, 90, 10), LineID: 2},
	}
	// document text: "12 Main Springfield"

	src := newTestImage(200, 60)
	result, _, err := FromImage(src).
		Tokens(tokens).
		Entities([]model.EntitySpan{{Kind: "ADDRESS", Start: 0, End: 19}}).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 2 {
		t.Fatalf("regions = %+v, want two", result.Regions)
	}

	// The inter-line gap must stay untouched.
	out := result.Image.(*image.RGBA)
	if got, want := out.RGBAAt(50, 20), src.RGBAAt(50, 20); got != want {
		t.Errorf("pixel in inter-line gap changed: %+v, want %+v", got, want)
	}
}

func TestRedactZeroLengthSpan(t *testing.T) {
	src := newTestImage(120, 40)
	result, warnings, err := FromImage(src).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "EMPTY", Start: 3, End: 3}}).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 0 {
		t.Errorf("regions = %+v, want none", result.Regions)
	}
	if len(warnings) != 1 || warnings[0].Code != model.WarnNoVisibleText {
		t.Errorf("warnings = %v, want one %s", warnings, model.WarnNoVisibleText)
	}
	if !bytes.Equal(result.Image.(*image.RGBA).Pix, src.Pix) {
		t.Error("image changed for a zero-length span")
	}
}

func TestRedactSpanInSeparatorGap(t *testing.T) {
	// Offsets 4..5 cover only the synthetic space between the tokens.
	result, warnings, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "X", Start: 4, End: 5}}).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 0 {
		t.Errorf("regions = %+v, want none", result.Regions)
	}
	if len(warnings) != 1 || warnings[0].Code != model.WarnNoVisibleText {
		t.Errorf("warnings = %v, want one %s", warnings, model.WarnNoVisibleText)
	}
}

func TestRedactOverlappingEntitiesMerge(t *testing.T) {
	// Two entities whose rectangles overlap paint as one merged region.
	result, _, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{
			{Kind: "PERSON", Start: 0, End: 7},
			{Kind: "LAST_NAME", Start: 5, End: 10},
		}).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 1 {
		t.Fatalf("regions = %+v, want exactly one merged region", result.Regions)
	}
	if want := model.NewRect(0, 0, 95, 10); result.Regions[0] != want {
		t.Errorf("region = %+v, want %+v", result.Regions[0], want)
	}
}

func TestRedactOutOfRangeSpanClamped(t *testing.T) {
	result, _, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "PERSON", Start: -5, End: 500}}).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 1 {
		t.Errorf("regions = %+v, want one", result.Regions)
	}
}

func TestRedactNoImage(t *testing.T) {
	_, _, err := FromImage(nil).Tokens(nameTokens()).Redact()
	if err != ErrNoImage {
		t.Errorf("Redact() error = %v, want ErrNoImage", err)
	}
}

func TestRedactEmptyInputs(t *testing.T) {
	src := newTestImage(20, 20)
	result, warnings, err := FromImage(src).Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(result.Regions) != 0 {
		t.Errorf("regions = %+v, want none", result.Regions)
	}
	if !bytes.Equal(result.Image.(*image.RGBA).Pix, src.Pix) {
		t.Error("image copy differs from source with no inputs")
	}
}

func TestRedactDeterministic(t *testing.T) {
	tokens := nameTokens()
	spans := []model.EntitySpan{
		{Kind: "PERSON", Start: 0, End: 10, Score: 0.8},
		{Kind: "FIRST_NAME", Start: 0, End: 4, Score: 0.9},
	}
	src := newTestImage(120, 40)

	first := MustRedact(FromImage(src).Tokens(tokens).Entities(spans).Redact())
	second := MustRedact(FromImage(src).Tokens(tokens).Entities(spans).Redact())

	if !bytes.Equal(first.Image.(*image.RGBA).Pix, second.Image.(*image.RGBA).Pix) {
		t.Error("repeated runs produced different pixel buffers")
	}
	if len(first.Regions) != len(second.Regions) {
		t.Fatalf("region counts differ: %d vs %d", len(first.Regions), len(second.Regions))
	}
	for i := range first.Regions {
		if first.Regions[i] != second.Regions[i] {
			t.Errorf("region %d differs: %+v vs %+v", i, first.Regions[i], second.Regions[i])
		}
	}
}

func TestRedactMinScore(t *testing.T) {
	result, warnings, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "PERSON", Start: 0, End: 10, Score: 0.3}}).
		MinScore(0.5).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 0 {
		t.Errorf("regions = %+v, want none", result.Regions)
	}
	if len(warnings) != 1 || warnings[0].Code != model.WarnLowScore {
		t.Errorf("warnings = %v, want one %s", warnings, model.WarnLowScore)
	}
}

func TestRedactAllowList(t *testing.T) {
	result, warnings, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "PERSON", Start: 0, End: 10}}).
		Allow("John Smith").
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 0 {
		t.Errorf("regions = %+v, want none", result.Regions)
	}
	if len(warnings) != 1 || warnings[0].Code != model.WarnAllowListed {
		t.Errorf("warnings = %v, want one %s", warnings, model.WarnAllowListed)
	}
}

func TestRedactPadding(t *testing.T) {
	result, _, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		Entities([]model.EntitySpan{{Kind: "FIRST_NAME", Start: 0, End: 4}}).
		Padding(2).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 1 {
		t.Fatalf("regions = %+v, want one", result.Regions)
	}
	// Padded box clamps at the image's top-left corner.
	if want := model.NewRect(0, 0, 42, 12); result.Regions[0] != want {
		t.Errorf("region = %+v, want %+v", result.Regions[0], want)
	}
}

func TestDocumentText(t *testing.T) {
	text, warnings, err := FromImage(newTestImage(120, 40)).
		Tokens(nameTokens()).
		DocumentText()

	if err != nil {
		t.Fatalf("DocumentText() error = %v", err)
	}
	if text != "John Smith" {
		t.Errorf("DocumentText() = %q, want %q", text, "John Smith")
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestChainingDoesNotMutate(t *testing.T) {
	base := FromImage(newTestImage(120, 40)).Tokens(nameTokens())

	withAllow := base.Allow("John Smith")
	if len(base.options.allowList) != 0 {
		t.Error("Allow() mutated the base redactor")
	}
	if len(withAllow.options.allowList) != 1 {
		t.Error("Allow() did not configure the new redactor")
	}

	withFill := base.FillColor(color.White)
	if base.options.fill != color.Color(color.Black) {
		t.Error("FillColor() mutated the base redactor")
	}
	_ = withFill
}

func TestDetectWith(t *testing.T) {
	tokens := []model.RawToken{
		{Text: "contact:", Box: model.NewRect(0, 0, 60, 10), LineID: 1},
		{Text: "jane@example.com", Box: model.NewRect(65, 0, 120, 10), LineID: 1},
	}

	result, _, err := FromImage(newTestImage(200, 30)).
		Tokens(tokens).
		DetectWith(context.Background(), detect.NewRegexDetector()).
		Redact()

	if err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	if len(result.Regions) != 1 {
		t.Fatalf("regions = %+v, want one", result.Regions)
	}
	if want := model.NewRect(65, 0, 120, 10); result.Regions[0] != want {
		t.Errorf("region = %+v, want %+v", result.Regions[0], want)
	}
	if len(result.Entities) != 1 || result.Entities[0].Kind != "EMAIL_ADDRESS" {
		t.Errorf("entity results = %+v, want one EMAIL_ADDRESS", result.Entities)
	}
}

// ============================================================================
// Span filtering
// ============================================================================

func TestFilterSpansContained(t *testing.T) {
	spans := []model.EntitySpan{
		{Kind: "FULL_NAME", Start: 24, End: 32, Score: 0.6},
		{Kind: "FIRST_NAME", Start: 24, End: 28, Score: 0.9},
		{Kind: "BLA", Start: 18, End: 32, Score: 0.8},
		{Kind: "BLA", Start: 23, End: 35, Score: 0.8},
		{Kind: "PHONE_NUMBER", Start: 48, End: 57, Score: 0.95},
	}

	got, warnings := filterSpans(spans, 0)
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	wantKinds := []string{"BLA", "BLA", "PHONE_NUMBER"}
	if len(got) != len(wantKinds) {
		t.Fatalf("filterSpans() kept %d spans, want %d: %+v", len(got), len(wantKinds), got)
	}
	for i, s := range got {
		if s.Kind != wantKinds[i] {
			t.Errorf("span %d = %s, want %s", i, s.Kind, wantKinds[i])
		}
	}
}

func TestFilterSpansDuplicateRange(t *testing.T) {
	spans := []model.EntitySpan{
		{Kind: "US_SSN", Start: 48, End: 57, Score: 0.55},
		{Kind: "PHONE_NUMBER", Start: 48, End: 57, Score: 0.95},
	}

	got, _ := filterSpans(spans, 0)
	if len(got) != 1 || got[0].Kind != "PHONE_NUMBER" {
		t.Errorf("filterSpans() = %+v, want just the higher-scored span", got)
	}
}

func TestFilterSpansDuplicateRangeTie(t *testing.T) {
	spans := []model.EntitySpan{
		{Kind: "A", Start: 0, End: 5, Score: 0.5},
		{Kind: "B", Start: 0, End: 5, Score: 0.5},
	}

	got, _ := filterSpans(spans, 0)
	if len(got) != 1 || got[0].Kind != "A" {
		t.Errorf("filterSpans() = %+v, want just the first-submitted span", got)
	}
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warnings := []Warning{
		{Code: model.WarnEmptySpan, Message: "a"},
		{Code: model.WarnLowScore, Message: "b"},
	}
	want := "empty-span: a\nlow-score: b"
	if got := FormatWarnings(warnings); got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
}
