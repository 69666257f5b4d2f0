package regions

import "github.com/tsawler/obscura/model"

// Merge combines rectangles that overlap or are separated by at most gap
// pixels into their union bounding box, using iterative pairwise merging
// until a fixed point. Empty rectangles are discarded. The loop terminates
// because every merge strictly reduces the rectangle count.
//
// The output contains no two rectangles within gap of each other, so
// applying Merge to its own result is a no-op.
func Merge(rects []model.Rect, gap int) []model.Rect {
	if gap < 0 {
		gap = 0
	}

	out := make([]model.Rect, 0, len(rects))
	for _, r := range rects {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}

	for {
		merged := false
	scan:
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				if mergeable(out[i], out[j], gap) {
					out[i] = out[i].Union(out[j])
					out = append(out[:j], out[j+1:]...)
					merged = true
					break scan
				}
			}
		}
		if !merged {
			return out
		}
	}
}

// mergeable reports whether two rectangles overlap or are separated by at
// most gap pixels in both axes.
func mergeable(a, b model.Rect, gap int) bool {
	if gap == 0 {
		return a.Touches(b)
	}
	return a.Expand(gap).Touches(b)
}
