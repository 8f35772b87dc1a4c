package display

import (
	"fmt"

	"github.com/halfmoat/texforge/internal/classify"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDecision returns a short per-file label, e.g. "color, upscale x4"
// or "normal, copy".
func FormatDecision(d classify.Decision) string {
	if d.Action == classify.ActionUpscale {
		return fmt.Sprintf("%s, upscale x%d", d.Kind, d.Scale)
	}
	return fmt.Sprintf("%s, copy", d.Kind)
}

// FormatDimensions returns "WxH", or "unknown" when either side is missing.
func FormatDimensions(width, height int) string {
	if width <= 0 || height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", width, height)
}
