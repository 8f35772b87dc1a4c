// Package classify is the per-file decision matrix: filename plus header
// dimensions in, kind and processing decision out. It is pure (no I/O, no
// config lookups) so batch runs are reproducible and the matrix is testable
// without a filesystem.
package classify

import "strings"

// Kind is the texture category inferred from the filename.
type Kind string

const (
	KindNormal Kind = "normal" // Normal map: surface vectors in color channels.
	KindColor  Kind = "color"  // Everything else.
	// KindUnknown is recorded when the header cannot be read and no
	// decision was made.
	KindUnknown Kind = "unknown"
)

// Action describes what the pipeline should do with a file.
type Action string

const (
	ActionCopy    Action = "copy"    // Mirror bytes unchanged.
	ActionUpscale Action = "upscale" // Run the external upscaler.
)

// Decision is the immutable outcome of classifying one file.
// Scale is 1 for copies and 2 or 4 for upscales.
type Decision struct {
	Kind   Kind
	Action Action
	Scale  int
}

// normalMarkers are checked in order as case-insensitive substrings of the
// base filename (dot included so "_n." cannot match mid-word stems like
// "_night"). A normal map run through a color-oriented upscaler comes out
// with corrupted vector encoding, so matches are always copied.
var normalMarkers = []string{"_n.", "_nm.", "_normal.", "_norm."}

// Dimension thresholds for color textures. Strict less-than on the lower
// bounds; the max-dim ceiling uses >=. Boundary values route to the next
// bucket, and batch reproducibility depends on that staying exact.
const (
	upscale4Below = 700
	upscale2Below = 1400
)

// IsNormalMap reports whether name (a base filename, not a path) carries one
// of the normal-map markers.
func IsNormalMap(name string) bool {
	n := strings.ToLower(name)
	for _, m := range normalMarkers {
		if strings.Contains(n, m) {
			return true
		}
	}
	return false
}

// Classify maps a base filename and header dimensions to a Decision.
//
// Normal maps copy unconditionally, taking priority over every dimension
// rule. Color textures copy when already at or above maxDim, upscale 4x
// below 700, upscale 2x below 1400, and copy otherwise.
func Classify(name string, width, height, maxDim int) Decision {
	if IsNormalMap(name) {
		return Decision{Kind: KindNormal, Action: ActionCopy, Scale: 1}
	}

	m := width
	if height > m {
		m = height
	}

	switch {
	case m >= maxDim:
		return Decision{Kind: KindColor, Action: ActionCopy, Scale: 1}
	case m < upscale4Below:
		return Decision{Kind: KindColor, Action: ActionUpscale, Scale: 4}
	case m < upscale2Below:
		return Decision{Kind: KindColor, Action: ActionUpscale, Scale: 2}
	default:
		return Decision{Kind: KindColor, Action: ActionCopy, Scale: 1}
	}
}
