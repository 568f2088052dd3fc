package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

const segmentTextPreviewWidth = 40

// formatClock renders seconds as m:ss.cc (or h:mm:ss.cc past the hour).
func formatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	centis := int64(math.Round(seconds * 100))
	cs := centis % 100
	total := centis / 100
	s := total % 60
	m := (total / 60) % 60
	h := total / 3600
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
	}
	return fmt.Sprintf("%d:%02d.%02d", m, s, cs)
}

func previewText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) <= segmentTextPreviewWidth {
		return text
	}
	return text[:segmentTextPreviewWidth-3] + "..."
}

func markSelected(id, selectedID string) string {
	if id != "" && id == selectedID {
		return "*"
	}
	return ""
}

func buildSegmentRows(state ipc.TimelineState) [][]string {
	rows := make([][]string, 0, len(state.Segments))
	for i, segment := range state.Segments {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			markSelected(segment.ID, state.SelectedSegmentID),
			segment.ID,
			segment.Kind,
			formatClock(segment.StartTime),
			formatClock(segment.EndTime),
			previewText(segment.Text),
		})
	}
	return rows
}

func buildSectionRows(state ipc.TimelineState) [][]string {
	rows := make([][]string, 0, len(state.Sections))
	for i, section := range state.Sections {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			markSelected(section.ID, state.SelectedSectionID),
			section.ID,
			formatClock(section.StartTime),
			formatClock(section.EndTime),
		})
	}
	return rows
}

func printTimeline(cmd *cobra.Command, state ipc.TimelineState) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Video:    %s\n", state.VideoPath)
	fmt.Fprintf(out, "Duration: %s  Playhead: %s  Zoom: %.2fx  Revision: %d\n",
		formatClock(state.Duration), formatClock(state.Playhead), state.Zoom, state.Revision)

	if len(state.Sections) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(
			[]string{"#", "", "Section", "Start", "End"},
			buildSectionRows(state),
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
		))
	}

	fmt.Fprintln(out)
	if len(state.Segments) == 0 {
		fmt.Fprintln(out, "Timeline is empty")
		return
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "", "Segment", "Kind", "Start", "End", "Text"},
		buildSegmentRows(state),
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
}

// printMutation reports a mutation outcome. Skipped mutations print the
// reason and are not treated as command failures.
func printMutation(cmd *cobra.Command, resp *ipc.MutationResponse, applied string) {
	out := cmd.OutOrStdout()
	if resp == nil {
		return
	}
	if !resp.Applied {
		reason := strings.TrimSpace(resp.Reason)
		if reason == "" {
			reason = "no change"
		}
		fmt.Fprintf(out, "Skipped: %s\n", reason)
		return
	}
	fmt.Fprintf(out, "%s (revision %d)\n", applied, resp.Timeline.Revision)
}
