package obscura

import (
	"strings"

	"github.com/tsawler/obscura/model"
)

// Warning describes a non-fatal anomaly encountered during redaction,
// such as a clamped span or a dropped token. Warnings never abort
// processing of the remaining entities or tokens.
type Warning = model.Warning

// FormatWarnings renders warnings as a single human-readable string, one
// warning per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, w.Code+": "+w.Message)
	}
	return strings.Join(lines, "\n")
}
