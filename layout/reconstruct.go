package layout

import (
	"sort"
	"strings"
)

// PageBreak terminates every reconstructed page so that concatenated pages
// are separated by a blank line.
const PageBreak = "\n\n"

// Reconstruct orders a single page's fragments and assembles them into plain
// text. Lines are separated by "\n" and the page ends with PageBreak.
// An empty fragment slice yields an empty string.
//
// The input slice is not modified.
func Reconstruct(fragments []Fragment, t Thresholds) string {
	lines := Lines(fragments, t)
	if len(lines) == 0 {
		return ""
	}

	var result strings.Builder
	for i, line := range lines {
		if i > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(line)
	}
	result.WriteString(PageBreak)
	return result.String()
}

// Lines returns the page's fragments grouped into lines in reading order,
// with spaces inserted between visibly separated fragments.
func Lines(fragments []Fragment, t Thresholds) []string {
	if len(fragments) == 0 {
		return nil
	}

	sorted := SortReadingOrder(fragments)

	var lines []string
	var line strings.Builder
	var lastY float64
	var prev Fragment

	for i, frag := range sorted {
		if i > 0 && abs(frag.Y-lastY) > t.Line {
			lines = append(lines, line.String())
			line.Reset()
		} else if line.Len() > 0 && frag.X-prev.End() > t.Word {
			line.WriteByte(' ')
		}

		line.WriteString(frag.Text)
		lastY = frag.Y
		prev = frag
	}

	return append(lines, line.String())
}

// SortReadingOrder returns a copy of fragments sorted by descending Y, with
// ties broken by ascending X. The sort is stable, so fragments at the same
// position keep their content-stream order.
func SortReadingOrder(fragments []Fragment) []Fragment {
	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // Higher Y first (PDF coordinates)
		}
		return sorted[i].X < sorted[j].X
	})

	return sorted
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
