package timeline

import (
	"sort"
	"strings"
)

// FromLines divides the available time evenly across the given lyric lines.
// The effective range starts at startOffset and ends endOffset before
// totalDuration; each line receives one equal-width lyric segment inside it.
// Degenerate inputs (no lines, or no positive time to fill) yield nil.
func FromLines(lines []string, totalDuration, startOffset, endOffset float64) []Segment {
	if len(lines) == 0 || totalDuration <= 0 {
		return nil
	}
	effective := totalDuration - startOffset - endOffset
	if effective <= 0 {
		return nil
	}

	slice := effective / float64(len(lines))
	segments := make([]Segment, 0, len(lines))
	for i, line := range lines {
		start := startOffset + float64(i)*slice
		end := startOffset + float64(i+1)*slice
		segments = append(segments, NewLyric(line, start, end))
	}
	return segments
}

// SortByStartTime returns a copy of segments in ascending start order. The
// sort is stable: ties keep their relative order, so sorting an already
// sorted collection is the identity.
func SortByStartTime(segments []Segment) []Segment {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}

// FindActive returns the first lyric segment, in sorted order, whose interval
// contains t (start inclusive, end exclusive). Spacers are never active.
func FindActive(segments []Segment, t float64) (Segment, bool) {
	for _, segment := range SortByStartTime(segments) {
		if segment.Kind != KindLyric {
			continue
		}
		if segment.Contains(t) {
			return segment, true
		}
	}
	return Segment{}, false
}

// Split cuts a segment at the given time. The first half keeps the original
// identity and text and ends at the cut; the second half is a new empty-text
// segment of the same kind covering the remainder.
func Split(segment Segment, at float64) (Segment, Segment) {
	first := segment
	first.EndTime = at

	second := Segment{
		ID:        newID(),
		StartTime: at,
		EndTime:   segment.EndTime,
		Kind:      segment.Kind,
	}
	return first, second
}

// Merge combines two segments into one spanning both intervals. The result
// keeps a's identity and kind and joins the texts with a single space.
func Merge(a, b Segment) Segment {
	merged := a
	merged.Text = strings.TrimSpace(a.Text + " " + b.Text)
	merged.StartTime = min(a.StartTime, b.StartTime)
	merged.EndTime = max(a.EndTime, b.EndTime)
	return merged
}

// Validate reports whether the collection satisfies the timing invariants:
// every segment has positive duration and a non-negative start, and no two
// adjacent segments in sorted order overlap. Contiguous segments are fine.
func Validate(segments []Segment) bool {
	sorted := SortByStartTime(segments)
	for i, segment := range sorted {
		if segment.StartTime < 0 || segment.EndTime <= segment.StartTime {
			return false
		}
		if i+1 < len(sorted) && segment.EndTime > sorted[i+1].StartTime {
			return false
		}
	}
	return true
}
