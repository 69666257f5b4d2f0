package obscura

import "image/color"

// RedactOptions holds configuration for a redaction run.
type RedactOptions struct {
	// Painting
	fill     color.Color
	mergeGap int
	padding  int

	// Entity filtering
	minScore  float64
	allowList []string
}

// defaultOptions returns the default redaction options.
func defaultOptions() RedactOptions {
	return RedactOptions{
		fill:      color.Black,
		mergeGap:  0,   // merge only overlapping or touching rectangles
		padding:   0,   // no extra pixels around synthesized boxes
		minScore:  0,   // keep every span regardless of confidence
		allowList: nil, // nil means nothing is allow-listed
	}
}

// clone creates a deep copy of RedactOptions.
func (o RedactOptions) clone() RedactOptions {
	newOpts := RedactOptions{
		fill:     o.fill,
		mergeGap: o.mergeGap,
		padding:  o.padding,
		minScore: o.minScore,
	}

	if o.allowList != nil {
		newOpts.allowList = make([]string, len(o.allowList))
		copy(newOpts.allowList, o.allowList)
	}

	return newOpts
}
