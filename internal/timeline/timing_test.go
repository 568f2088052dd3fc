package timeline_test

import (
	"math"
	"testing"

	"lyricdrop/internal/timeline"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFromLinesEqualSlices(t *testing.T) {
	segments := timeline.FromLines([]string{"a", "b", "c"}, 30, 0, 0)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	expected := [][2]float64{{0, 10}, {10, 20}, {20, 30}}
	for i, segment := range segments {
		if !almostEqual(segment.StartTime, expected[i][0]) || !almostEqual(segment.EndTime, expected[i][1]) {
			t.Fatalf("segment %d: got [%v, %v), want [%v, %v)", i, segment.StartTime, segment.EndTime, expected[i][0], expected[i][1])
		}
		if segment.Kind != timeline.KindLyric {
			t.Fatalf("segment %d: expected lyric kind, got %s", i, segment.Kind)
		}
		if segment.ID == "" {
			t.Fatalf("segment %d: expected assigned id", i)
		}
	}
}

func TestFromLinesHonorsOffsets(t *testing.T) {
	segments := timeline.FromLines([]string{"x", "y"}, 30, 5, 5)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if !almostEqual(segments[0].StartTime, 5) || !almostEqual(segments[0].EndTime, 15) {
		t.Fatalf("first segment misplaced: [%v, %v)", segments[0].StartTime, segments[0].EndTime)
	}
	if !almostEqual(segments[1].StartTime, 15) || !almostEqual(segments[1].EndTime, 25) {
		t.Fatalf("second segment misplaced: [%v, %v)", segments[1].StartTime, segments[1].EndTime)
	}
}

func TestFromLinesDegenerateInputs(t *testing.T) {
	cases := []struct {
		name     string
		lines    []string
		total    float64
		startOff float64
		endOff   float64
	}{
		{"no lines", nil, 30, 0, 0},
		{"zero duration", []string{"a"}, 0, 0, 0},
		{"negative duration", []string{"a"}, -3, 0, 0},
		{"offsets consume duration", []string{"a"}, 10, 6, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if segments := timeline.FromLines(tc.lines, tc.total, tc.startOff, tc.endOff); segments != nil {
				t.Fatalf("expected nil, got %d segments", len(segments))
			}
		})
	}
}

func TestWithTimingClamps(t *testing.T) {
	segment := timeline.NewLyric("line", 4, 8)

	updated := segment.WithTiming(-2, 6)
	if updated.StartTime != 0 || updated.EndTime != 6 {
		t.Fatalf("expected [0, 6), got [%v, %v)", updated.StartTime, updated.EndTime)
	}

	updated = segment.WithTiming(5, 3)
	if updated.StartTime != 5 || updated.EndTime != 5 {
		t.Fatalf("expected end clamped to start, got [%v, %v)", updated.StartTime, updated.EndTime)
	}

	if segment.StartTime != 4 || segment.EndTime != 8 {
		t.Fatal("WithTiming mutated its receiver")
	}
}

func TestSortByStartTimeStable(t *testing.T) {
	a := timeline.NewLyric("a", 10, 12)
	b := timeline.NewLyric("b", 0, 2)
	c := timeline.NewLyric("c", 10, 11)

	sorted := timeline.SortByStartTime([]timeline.Segment{a, b, c})
	if sorted[0].Text != "b" || sorted[1].Text != "a" || sorted[2].Text != "c" {
		t.Fatalf("unexpected order: %s %s %s", sorted[0].Text, sorted[1].Text, sorted[2].Text)
	}

	again := timeline.SortByStartTime(sorted)
	for i := range sorted {
		if again[i].ID != sorted[i].ID {
			t.Fatal("sorting a sorted collection changed the order")
		}
	}
}

func TestFindActive(t *testing.T) {
	segments := []timeline.Segment{
		timeline.NewSpacer(0, 5),
		timeline.NewLyric("first", 5, 10),
		timeline.NewLyric("second", 10, 15),
	}

	if _, ok := timeline.FindActive(segments, 2); ok {
		t.Fatal("spacer should never be active")
	}

	active, ok := timeline.FindActive(segments, 5)
	if !ok || active.Text != "first" {
		t.Fatalf("expected first lyric at its start bound, got %+v ok=%v", active, ok)
	}

	// End bound is exclusive; 10 belongs to the next segment.
	active, ok = timeline.FindActive(segments, 10)
	if !ok || active.Text != "second" {
		t.Fatalf("expected second lyric at t=10, got %+v ok=%v", active, ok)
	}

	if _, ok := timeline.FindActive(segments, 15); ok {
		t.Fatal("expected no active segment past the last end time")
	}
}

func TestFindActiveOverlapResolvesToFirstSorted(t *testing.T) {
	early := timeline.NewLyric("early", 3, 9)
	late := timeline.NewLyric("late", 5, 12)

	active, ok := timeline.FindActive([]timeline.Segment{late, early}, 6)
	if !ok || active.ID != early.ID {
		t.Fatalf("expected earliest overlapping lyric, got %+v ok=%v", active, ok)
	}
}

func TestSplitKeepsIdentityAndCoversSpan(t *testing.T) {
	segment := timeline.NewLyric("whole line", 2, 10)
	first, second := timeline.Split(segment, 6)

	if first.ID != segment.ID || first.Text != "whole line" {
		t.Fatal("first half must keep the original identity and text")
	}
	if first.StartTime != 2 || first.EndTime != 6 {
		t.Fatalf("first half misplaced: [%v, %v)", first.StartTime, first.EndTime)
	}
	if second.ID == segment.ID || second.ID == "" {
		t.Fatal("second half needs a fresh identity")
	}
	if second.Text != "" || second.Kind != segment.Kind {
		t.Fatalf("second half should be empty text of the same kind, got %+v", second)
	}
	if second.StartTime != 6 || second.EndTime != 10 {
		t.Fatalf("second half misplaced: [%v, %v)", second.StartTime, second.EndTime)
	}
}

func TestMergeJoinsTextAndSpan(t *testing.T) {
	a := timeline.NewLyric("hello", 4, 6)
	b := timeline.NewLyric("world", 6, 9)

	merged := timeline.Merge(a, b)
	if merged.ID != a.ID {
		t.Fatal("merge must keep the first segment's identity")
	}
	if merged.Text != "hello world" {
		t.Fatalf("unexpected merged text %q", merged.Text)
	}
	if merged.StartTime != 4 || merged.EndTime != 9 {
		t.Fatalf("unexpected merged span [%v, %v)", merged.StartTime, merged.EndTime)
	}

	empty := timeline.Merge(a.WithText(""), b.WithText(""))
	if empty.Text != "" {
		t.Fatalf("expected trimmed empty text, got %q", empty.Text)
	}
}

func TestSplitThenMergeRoundTrips(t *testing.T) {
	segment := timeline.NewLyric("line", 3, 11)
	first, second := timeline.Split(segment, 7)
	merged := timeline.Merge(first, second)

	if merged.ID != segment.ID {
		t.Fatal("round trip lost identity")
	}
	if !almostEqual(merged.StartTime, segment.StartTime) || !almostEqual(merged.EndTime, segment.EndTime) {
		t.Fatalf("round trip changed span: [%v, %v)", merged.StartTime, merged.EndTime)
	}
}

func TestValidate(t *testing.T) {
	contiguous := []timeline.Segment{
		timeline.NewLyric("a", 0, 5),
		timeline.NewLyric("b", 5, 10),
	}
	if !timeline.Validate(contiguous) {
		t.Fatal("contiguous segments must validate")
	}

	cases := []struct {
		name     string
		segments []timeline.Segment
	}{
		{"negative start", []timeline.Segment{timeline.NewLyric("a", -1, 5)}},
		{"zero duration", []timeline.Segment{timeline.NewLyric("a", 5, 5)}},
		{"inverted", []timeline.Segment{timeline.NewLyric("a", 6, 5)}},
		{"overlap", []timeline.Segment{timeline.NewLyric("a", 0, 6), timeline.NewLyric("b", 5, 10)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if timeline.Validate(tc.segments) {
				t.Fatal("expected validation failure")
			}
		})
	}

	if !timeline.Validate(nil) {
		t.Fatal("empty collection is trivially valid")
	}
}
