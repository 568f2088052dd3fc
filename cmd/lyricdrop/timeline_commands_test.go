package main

import (
	"encoding/json"
	"testing"

	"lyricdrop/internal/ipc"
)

func TestTimelineShowsImportedSegments(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)
	importTestLyrics(t, env, "first line", "second line")

	out, _, err := runCLI(t, []string{"timeline"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	requireContains(t, out, "first line")
	requireContains(t, out, "second line")
	requireContains(t, out, "Duration: 3:00.00")
}

func TestTimelineJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)
	importTestLyrics(t, env, "alpha", "beta")

	out, _, err := runCLI(t, []string{"timeline", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("timeline --json: %v", err)
	}

	var state ipc.TimelineState
	if err := json.Unmarshal([]byte(out), &state); err != nil {
		t.Fatalf("decode timeline JSON: %v", err)
	}
	if len(state.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(state.Segments))
	}
	if state.Duration != 180 {
		t.Fatalf("expected duration 180, got %v", state.Duration)
	}
}

func TestTimelineRequiresDaemon(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"timeline"}, env.socketPath+".missing", env.configPath)
	if err == nil {
		t.Fatal("expected error for unreachable daemon")
	}
}

func TestSegmentUpdateAndActive(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)
	importTestLyrics(t, env, "hello", "world")

	var state ipc.TimelineState
	out, _, err := runCLI(t, []string{"timeline", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &state); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}

	segID := state.Segments[0].ID
	out, _, err = runCLI(t, []string{"segment", "update", segID, "--text", "hello again"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("segment update: %v", err)
	}
	requireContains(t, out, "Segment updated")

	out, _, err = runCLI(t, []string{"active", "0"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	requireContains(t, out, "hello again")
}

func TestSegmentUpdateSkippedForUnknownID(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)
	importTestLyrics(t, env, "solo")

	out, _, err := runCLI(t, []string{"segment", "update", "missing-id", "--text", "x"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("segment update: %v", err)
	}
	requireContains(t, out, "Skipped:")
}

func TestPlayheadAndZoom(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)

	out, _, err := runCLI(t, []string{"playhead", "12.5"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("playhead: %v", err)
	}
	requireContains(t, out, "Playhead at 0:12.50")

	out, _, err = runCLI(t, []string{"zoom", "2"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("zoom: %v", err)
	}
	requireContains(t, out, "Zoom 2.00x")
}
