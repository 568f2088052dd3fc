package timeline

import (
	"strings"

	"github.com/google/uuid"
)

// SegmentKind distinguishes lyric-bearing segments from silent spacers.
type SegmentKind string

const (
	// KindLyric marks a segment that carries a line of lyrics.
	KindLyric SegmentKind = "lyric"
	// KindSpacer marks a silent placeholder that occupies time but renders nothing.
	KindSpacer SegmentKind = "spacer"
)

// ParseKind maps a wire value onto a known segment kind.
func ParseKind(value string) (SegmentKind, bool) {
	switch SegmentKind(strings.ToLower(strings.TrimSpace(value))) {
	case KindLyric:
		return KindLyric, true
	case KindSpacer:
		return KindSpacer, true
	default:
		return "", false
	}
}

// Segment is a contiguous time interval on the editing timeline.
// StartTime and EndTime are seconds from the beginning of the video.
type Segment struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	StartTime float64     `json:"start_time"`
	EndTime   float64     `json:"end_time"`
	Kind      SegmentKind `json:"kind"`
}

func newID() string {
	return uuid.NewString()
}

// NewLyric constructs a lyric segment with a fresh identity.
func NewLyric(text string, start, end float64) Segment {
	return Segment{
		ID:        newID(),
		Text:      text,
		StartTime: start,
		EndTime:   end,
		Kind:      KindLyric,
	}
}

// NewSpacer constructs a silent segment with a fresh identity.
func NewSpacer(start, end float64) Segment {
	return Segment{
		ID:        newID(),
		StartTime: start,
		EndTime:   end,
		Kind:      KindSpacer,
	}
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// IsSpacer reports whether the segment is a silent placeholder.
func (s Segment) IsSpacer() bool {
	return s.Kind == KindSpacer
}

// Contains reports whether t falls inside the segment's half-open interval.
func (s Segment) Contains(t float64) bool {
	return s.StartTime <= t && t < s.EndTime
}

// Within reports whether the segment lies entirely inside [start, end].
func (s Segment) Within(start, end float64) bool {
	return s.StartTime >= start && s.EndTime <= end
}

// WithTiming returns a copy with the requested bounds applied. The start is
// clamped to zero and the end is clamped so it never precedes the start.
func (s Segment) WithTiming(start, end float64) Segment {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	s.StartTime = start
	s.EndTime = end
	return s
}

// WithText returns a copy carrying the replacement text. Timing is untouched.
func (s Segment) WithText(text string) Segment {
	s.Text = text
	return s
}

// Shifted returns a copy moved by delta seconds, start and end together.
func (s Segment) Shifted(delta float64) Segment {
	s.StartTime += delta
	s.EndTime += delta
	return s
}
