package regions

import "github.com/tsawler/obscura/model"

// Synthesize converts a resolved token group into axis-aligned rectangles,
// one per visual line, in line order of first appearance. Each rectangle
// tightly covers the union of the token boxes on its line. Empty input
// yields nil, not an error.
func Synthesize(tokens []model.Token) []model.Rect {
	if len(tokens) == 0 {
		return nil
	}

	var order []int
	byLine := make(map[int]model.Rect, 4)

	for _, tok := range tokens {
		if box, seen := byLine[tok.LineID]; seen {
			byLine[tok.LineID] = box.Union(tok.Box)
		} else {
			byLine[tok.LineID] = tok.Box
			order = append(order, tok.LineID)
		}
	}

	out := make([]model.Rect, 0, len(order))
	for _, id := range order {
		out = append(out, byLine[id])
	}
	return out
}
