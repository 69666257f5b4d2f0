// Package regions turns resolved token groups into redaction rectangles.
//
// [Synthesize] produces one tight rectangle per visual line an entity
// touches: adjacent words of the same entity paint as a single box with no
// seams, while an entity wrapping across printed lines gets one box per
// line, never a box spanning the inter-line gap.
//
// [Merge] combines rectangles that overlap or sit within a configurable
// pixel gap of each other into their union, repeating until no further
// merge is possible. The result is idempotent: no two output rectangles
// overlap, and merging again changes nothing.
package regions
