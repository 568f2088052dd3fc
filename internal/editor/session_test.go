package editor_test

import (
	"math"
	"testing"

	"lyricdrop/internal/editor"
	"lyricdrop/internal/timeline"
)

func newSession(t *testing.T, duration float64) *editor.Session {
	t.Helper()
	return editor.NewSession(editor.Options{Duration: duration})
}

// mustApply returns a closure so the two-value mutation result can feed it
// directly: mustApply(t)(session.SetPlayhead(3)).
func mustApply(t *testing.T) func(editor.Snapshot, editor.Outcome) editor.Snapshot {
	t.Helper()
	return func(snap editor.Snapshot, out editor.Outcome) editor.Snapshot {
		t.Helper()
		if !out.Applied {
			t.Fatalf("operation rejected: %s", out.Reason)
		}
		return snap
	}
}

func TestImportDefaultsToFullVideo(t *testing.T) {
	session := newSession(t, 30)
	snap := mustApply(t)(session.ImportLyrics("a\nb\nc\n", nil, nil))

	if len(snap.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(snap.Segments))
	}
	requireTiming(t, snap.Segments[0], 0, 10)
	requireTiming(t, snap.Segments[2], 20, 30)
}

func TestImportEmptyTextIsAdvisoryNoOp(t *testing.T) {
	session := newSession(t, 30)
	snap, out := session.ImportLyrics(" \n\t\n", nil, nil)
	if out.Applied {
		t.Fatal("blank import must not apply")
	}
	if out.Reason == "" {
		t.Fatal("rejections must carry an advisory reason")
	}
	if len(snap.Segments) != 0 || snap.Revision != 0 {
		t.Fatal("rejected import must not change state")
	}
}

func TestImportWithoutDurationRejected(t *testing.T) {
	session := newSession(t, 0)
	if _, out := session.ImportLyrics("line", nil, nil); out.Applied {
		t.Fatal("import with unknown duration and no bounds must be rejected")
	}
}

func TestImportWithExplicitBoundsCreatesSection(t *testing.T) {
	session := newSession(t, 60)
	start, end := 10.0, 40.0
	snap := mustApply(t)(session.ImportLyrics("a\nb\nc", &start, &end))

	if len(snap.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(snap.Sections))
	}
	if snap.Sections[0].StartTime != 10 || snap.Sections[0].EndTime != 40 {
		t.Fatalf("section must cover the import range: %+v", snap.Sections[0])
	}
	requireTiming(t, snap.Segments[0], 10, 20)
	requireTiming(t, snap.Segments[2], 30, 40)
}

func TestImportReusesCoveringSection(t *testing.T) {
	session := newSession(t, 60)
	mustApply(t)(session.AddSection(0, 30))
	start, end := 5.0, 25.0
	snap := mustApply(t)(session.ImportLyrics("a\nb", &start, &end))

	if len(snap.Sections) != 1 {
		t.Fatalf("covered range must not grow a second section: %+v", snap.Sections)
	}
}

func TestImportRejectedWhenBoundsStraddleSection(t *testing.T) {
	session := newSession(t, 60)
	mustApply(t)(session.AddSection(0, 30))
	start, end := 20.0, 50.0
	snap, out := session.ImportLyrics("a\nb", &start, &end)

	if out.Applied {
		t.Fatal("import straddling a section boundary must be rejected")
	}
	if len(snap.Segments) != 0 || len(snap.Sections) != 1 {
		t.Fatalf("rejected import must not change state: %+v", snap)
	}
}

func TestAppendLyricsIntoSection(t *testing.T) {
	session := newSession(t, 60)
	snap := mustApply(t)(session.AddSection(0, 20))
	sectionID := snap.Sections[0].ID
	start, end := 0.0, 20.0
	mustApply(t)(session.ImportLyrics("one\ntwo", &start, &end))

	before := session.Snapshot()
	ids := []string{before.Segments[0].ID, before.Segments[1].ID}

	snap = mustApply(t)(session.AppendLyrics("three\nfour", sectionID))
	if len(snap.Segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(snap.Segments))
	}
	for i, want := range []string{"one", "two", "three", "four"} {
		if snap.Segments[i].Text != want {
			t.Fatalf("segment %d: got %q, want %q", i, snap.Segments[i].Text, want)
		}
		requireTiming(t, snap.Segments[i], float64(i)*5, float64(i+1)*5)
	}
	if snap.Segments[0].ID != ids[0] || snap.Segments[1].ID != ids[1] {
		t.Fatal("append must reuse existing ids positionally")
	}

	if _, out := session.AppendLyrics("x", "missing-section"); out.Applied {
		t.Fatal("append into an unknown section must be a no-op")
	}
}

func TestRemoveSectionDiscardsContainedSegments(t *testing.T) {
	session := newSession(t, 60)
	snap := mustApply(t)(session.AddSection(0, 30))
	sectionID := snap.Sections[0].ID
	start, end := 0.0, 30.0
	mustApply(t)(session.ImportLyrics("a\nb\nc", &start, &end))
	outStart, outEnd := 40.0, 50.0
	mustApply(t)(session.ImportLyrics("keep", &outStart, &outEnd))

	snap = session.Snapshot()
	mustApply(t)(session.SelectSegment(snap.Segments[0].ID))
	mustApply(t)(session.SelectSection(sectionID))

	snap = mustApply(t)(session.RemoveSection(sectionID))
	if len(snap.Sections) != 1 || snap.Sections[0].StartTime != 40 {
		t.Fatalf("only the outside section may survive: %+v", snap.Sections)
	}
	if len(snap.Segments) != 1 || snap.Segments[0].Text != "keep" {
		t.Fatalf("only the outside segment may survive: %+v", snap.Segments)
	}
	if snap.SelectedSegmentID != "" || snap.SelectedSectionID != "" {
		t.Fatal("selections pointing at removed entities must clear")
	}
}

func TestResizeSectionScenario(t *testing.T) {
	// A section [0, 30) with three equal 10s segments resized to [0, 15)
	// yields three exact 5s segments.
	session := newSession(t, 60)
	snap := mustApply(t)(session.AddSection(0, 30))
	sectionID := snap.Sections[0].ID
	start, end := 0.0, 30.0
	mustApply(t)(session.ImportLyrics("a\nb\nc", &start, &end))

	newEnd := 15.0
	snap = mustApply(t)(session.ResizeSection(sectionID, editor.SectionUpdate{EndTime: &newEnd}))

	if snap.Sections[0].EndTime != 15 {
		t.Fatalf("section end not committed: %+v", snap.Sections[0])
	}
	requireTiming(t, snap.Segments[0], 0, 5)
	requireTiming(t, snap.Segments[1], 5, 10)
	requireTiming(t, snap.Segments[2], 10, 15)
}

func TestResizeSectionRoundTrip(t *testing.T) {
	session := newSession(t, 120)
	snap := mustApply(t)(session.AddSection(10, 70))
	sectionID := snap.Sections[0].ID
	start, end := 10.0, 70.0
	mustApply(t)(session.ImportLyrics("a\nb\nc\nd\ne", &start, &end))
	original := session.Snapshot().Segments

	newStart, newEnd := 20.0, 50.0
	mustApply(t)(session.ResizeSection(sectionID, editor.SectionUpdate{StartTime: &newStart, EndTime: &newEnd}))
	backStart, backEnd := 10.0, 70.0
	snap = mustApply(t)(session.ResizeSection(sectionID, editor.SectionUpdate{StartTime: &backStart, EndTime: &backEnd}))

	for i, segment := range snap.Segments {
		if math.Abs(segment.StartTime-original[i].StartTime) > 1e-9 ||
			math.Abs(segment.EndTime-original[i].EndTime) > 1e-9 {
			t.Fatalf("segment %d did not round-trip: got [%v, %v), want [%v, %v)",
				i, segment.StartTime, segment.EndTime, original[i].StartTime, original[i].EndTime)
		}
	}
}

func TestResizeEmptySectionJustMovesBounds(t *testing.T) {
	session := newSession(t, 60)
	snap := mustApply(t)(session.AddSection(0, 10))
	sectionID := snap.Sections[0].ID

	newEnd := 20.0
	snap = mustApply(t)(session.ResizeSection(sectionID, editor.SectionUpdate{EndTime: &newEnd}))
	if snap.Sections[0].EndTime != 20 {
		t.Fatalf("bounds not updated: %+v", snap.Sections[0])
	}
	if len(snap.Segments) != 0 {
		t.Fatal("no segments should appear from a bounds-only resize")
	}
}

func TestInsertSpacerAdjustsSections(t *testing.T) {
	session := newSession(t, 100)
	snap := mustApply(t)(session.AddSection(0, 30))
	containing := snap.Sections[0].ID
	snap = mustApply(t)(session.AddSection(40, 50))
	later := snap.Sections[1].ID
	start, end := 0.0, 30.0
	mustApply(t)(session.ImportLyrics("a\nb\nc", &start, &end))

	// Scenario: a segment spans [10, 20) and the spacer lands left of its
	// midpoint, snapping to 10.
	snap = mustApply(t)(session.InsertSpacer(12, nil))

	segments := snap.Segments
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}
	requireTiming(t, segments[0], 0, 10)
	if segments[1].Kind != timeline.KindSpacer {
		t.Fatal("spacer must occupy the insertion point")
	}
	requireTiming(t, segments[1], 10, 12)
	requireTiming(t, segments[2], 12, 22)
	requireTiming(t, segments[3], 22, 32)

	section, _ := snapSection(snap, containing)
	if section.EndTime != 32 {
		t.Fatalf("containing section must stretch by the default 2s: %+v", section)
	}
	section, _ = snapSection(snap, later)
	if section.StartTime != 42 || section.EndTime != 52 {
		t.Fatalf("later section must shift wholesale: %+v", section)
	}
}

func snapSection(snap editor.Snapshot, id string) (timeline.Section, bool) {
	for _, section := range snap.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return timeline.Section{}, false
}

func TestActiveAtTracksStore(t *testing.T) {
	session := newSession(t, 30)
	mustApply(t)(session.ImportLyrics("first\nsecond\nthird", nil, nil))

	active, ok := session.ActiveAt(12)
	if !ok || active.Text != "second" {
		t.Fatalf("expected second lyric at t=12, got %+v ok=%v", active, ok)
	}

	snap := session.Snapshot()
	mustApply(t)(session.RemoveSegment(snap.Segments[1].ID))
	if _, ok := session.ActiveAt(12); ok {
		t.Fatal("converted spacer must not be active")
	}
}

func TestSubscribersSeeAppliedMutations(t *testing.T) {
	session := newSession(t, 30)

	var notified []uint64
	cancel := session.Subscribe(func(snap editor.Snapshot) {
		notified = append(notified, snap.Revision)
	})

	mustApply(t)(session.ImportLyrics("a", nil, nil))
	session.ImportLyrics("", nil, nil) // rejected, no notification
	mustApply(t)(session.SetPlayhead(3))

	if len(notified) != 2 || notified[0] != 1 || notified[1] != 2 {
		t.Fatalf("unexpected notifications: %v", notified)
	}

	cancel()
	mustApply(t)(session.SetPlayhead(5))
	if len(notified) != 2 {
		t.Fatal("cancelled subscriber must not be notified")
	}
}

func TestPlayheadAndZoomClamp(t *testing.T) {
	session := newSession(t, 30)

	snap := mustApply(t)(session.SetPlayhead(-4))
	if snap.Playhead != 0 {
		t.Fatalf("playhead must clamp to zero, got %v", snap.Playhead)
	}
	snap = mustApply(t)(session.SetPlayhead(99))
	if snap.Playhead != 30 {
		t.Fatalf("playhead must clamp to the duration, got %v", snap.Playhead)
	}

	snap = mustApply(t)(session.SetZoom(0.1))
	if snap.Zoom != editor.DefaultZoomMin {
		t.Fatalf("zoom must clamp to the lower bound, got %v", snap.Zoom)
	}
	snap = mustApply(t)(session.SetZoom(10))
	if snap.Zoom != editor.DefaultZoomMax {
		t.Fatalf("zoom must clamp to the upper bound, got %v", snap.Zoom)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	session := newSession(t, 30)
	mustApply(t)(session.ImportLyrics("a\nb", nil, nil))

	snap := session.Snapshot()
	snap.Segments[0].Text = "tampered"

	fresh := session.Snapshot()
	if fresh.Segments[0].Text == "tampered" {
		t.Fatal("snapshot must not alias store state")
	}
}
