package main

import (
	"context"
	"testing"

	"lyricdrop/internal/queue"
)

func TestExportStartListAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)
	importTestLyrics(t, env, "one", "two", "three")

	out, _, err := runCLI(t, []string{"export", "start"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("export start: %v", err)
	}
	requireContains(t, out, "Queued export 1")
	requireContains(t, out, "3 segments")

	out, _, err = runCLI(t, []string{"export", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("export list: %v", err)
	}
	requireContains(t, out, "clip-lyrics-")

	out, _, err = runCLI(t, []string{"export", "show", "1"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("export show: %v", err)
	}
	requireContains(t, out, "Job:      1")
	requireContains(t, out, "Segments: 3")
}

func TestExportStartRequiresLyrics(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)

	_, _, err := runCLI(t, []string{"export", "start"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected error for empty timeline")
	}
}

func TestExportClearRemovesTerminalJobs(t *testing.T) {
	env := setupCLITestEnv(t)
	openTestVideo(t, env)
	importTestLyrics(t, env, "line")

	out, _, err := runCLI(t, []string{"export", "start"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("export start: %v", err)
	}
	requireContains(t, out, "Queued export")

	ctx := context.Background()
	job, err := env.store.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("lookup job: %v", err)
	}
	if job == nil {
		t.Fatal("job not found")
	}
	job.Status = queue.StatusFailed
	if err := env.store.Update(ctx, job); err != nil {
		t.Fatalf("fail job: %v", err)
	}

	out, _, err = runCLI(t, []string{"export", "clear"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("export clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 export jobs")
}
