// Package index builds the offset-to-token mapping shared between OCR
// output and entity spans.
//
// [Build] normalizes raw OCR tokens into reading order, joins their text
// with single ASCII spaces into the document text, and records each token's
// half-open character range in that text. The resulting [TokenIndex]
// answers range queries with a binary search over the precomputed offsets,
// so resolving an entity costs O(log tokens) rather than a rescan of the
// document text.
//
// [Resolve] is the entity-span entry point. It clamps analyzer offsets to
// the document text bounds before lookup: out-of-range offsets from the
// analysis collaborator are treated as approximate, never as errors.
//
// All offsets are byte offsets into the document text. Token text is
// NFC-normalized during the build, so for every token the slice
// DocumentText()[StartOffset:EndOffset] equals the token's text exactly.
package index
