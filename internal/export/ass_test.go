package export

import (
	"strings"
	"testing"

	"lyricdrop/internal/editor"
	"lyricdrop/internal/timeline"
)

func testStyle() Style {
	return Style{FontName: "DejaVu Sans", FontSize: 48, PrimaryColor: "&H00FFFFFF"}
}

func TestRenderEmitsLyricDialogueInOrder(t *testing.T) {
	snapshot := editor.Snapshot{
		Segments: []timeline.Segment{
			timeline.NewLyric("second line", 4, 6),
			timeline.NewLyric("first line", 0, 2.5),
			timeline.NewSpacer(2.5, 4),
		},
	}

	doc := Render(snapshot, testStyle())

	first := strings.Index(doc, "Dialogue: 0,0:00:00.00,0:00:02.50,Lyric,,0,0,0,,first line")
	second := strings.Index(doc, "Dialogue: 0,0:00:04.00,0:00:06.00,Lyric,,0,0,0,,second line")
	if first < 0 || second < 0 {
		t.Fatalf("missing dialogue events:\n%s", doc)
	}
	if first > second {
		t.Fatal("expected dialogue events sorted by start time")
	}
	if strings.Count(doc, "Dialogue:") != 2 {
		t.Fatalf("expected spacers to produce no dialogue:\n%s", doc)
	}
	if !strings.Contains(doc, "Style: Lyric,DejaVu Sans,48,&H00FFFFFF") {
		t.Fatalf("missing style line:\n%s", doc)
	}
}

func TestRenderWritesSectionComments(t *testing.T) {
	snapshot := editor.Snapshot{
		Sections: []timeline.Section{
			{ID: "sec-1", StartTime: 10, EndTime: 20},
		},
	}

	doc := Render(snapshot, testStyle())
	if !strings.Contains(doc, "Comment: 0,0:00:10.00,0:00:20.00,Lyric,,0,0,0,,section sec-1") {
		t.Fatalf("missing section comment:\n%s", doc)
	}
}

func TestRenderEscapesBracesAndNewlines(t *testing.T) {
	snapshot := editor.Snapshot{
		Segments: []timeline.Segment{
			timeline.NewLyric("oh {yeah}\nagain", 0, 1),
		},
	}

	doc := Render(snapshot, testStyle())
	if !strings.Contains(doc, `oh (yeah)\Nagain`) {
		t.Fatalf("expected escaped dialogue text:\n%s", doc)
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00.00"},
		{1.5, "0:00:01.50"},
		{62.345, "0:01:02.35"},
		{3723.456, "1:02:03.46"},
		{-4, "0:00:00.00"},
	}
	for _, tc := range cases {
		if got := formatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestBuildArgsBurnsWithConfiguredEncodeSettings(t *testing.T) {
	burner := &Burner{binary: "ffmpeg", crf: 23, preset: "fast"}
	args := burner.buildArgs("/videos/in.mp4", "/tmp/lyrics.ass", "/exports/out.mp4")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-vf ass=/tmp/lyrics.ass") {
		t.Fatalf("missing subtitle filter: %v", args)
	}
	if !strings.Contains(joined, "-crf 23") || !strings.Contains(joined, "-preset fast") {
		t.Fatalf("missing encode settings: %v", args)
	}
	if args[len(args)-1] != "/exports/out.mp4" {
		t.Fatalf("expected output path last, got %v", args)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	got := escapeFilterPath(`C:\tmp\it's.ass`)
	want := `C\:\\tmp\\it\'s.ass`
	if got != want {
		t.Fatalf("escapeFilterPath = %q, want %q", got, want)
	}
}
