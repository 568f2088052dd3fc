package daemon

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lyricdrop/internal/editor"
	"lyricdrop/internal/logging"
	"lyricdrop/internal/testsupport"
)

func newDaemon(t *testing.T) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	d, err := New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	return d
}

func openTestSession(d *Daemon, videoPath string, duration float64) *editor.Session {
	session := editor.NewSession(editor.Options{
		VideoPath:      videoPath,
		Duration:       duration,
		SpacerDuration: d.cfg.Editor.SpacerDuration,
		ZoomMin:        d.cfg.Editor.ZoomMin,
		ZoomMax:        d.cfg.Editor.ZoomMax,
	})
	d.mu.Lock()
	d.session = session
	d.mu.Unlock()
	return session
}

func TestStartStopManagesLock(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected error starting twice")
	}
	d.Stop()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("restart after stop: %v", err)
	}
	d.Stop()
}

func TestSessionRequiresOpenVideo(t *testing.T) {
	d := newDaemon(t)

	if _, err := d.Session(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if d.CloseSession() {
		t.Fatal("expected no session to close")
	}

	openTestSession(d, "/videos/song.mp4", 180)
	if _, err := d.Session(); err != nil {
		t.Fatalf("expected open session: %v", err)
	}
	if !d.CloseSession() {
		t.Fatal("expected session to be closed")
	}
	if _, err := d.Session(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after close, got %v", err)
	}
}

func TestEnqueueExportFreezesTimeline(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	session := openTestSession(d, "/videos/song.mp4", 180)
	if _, outcome := session.ImportLyrics("first line\nsecond line", nil, nil); !outcome.Applied {
		t.Fatalf("import skipped: %s", outcome.Reason)
	}

	job, err := d.EnqueueExport(ctx)
	if err != nil {
		t.Fatalf("enqueue export: %v", err)
	}
	if job.SegmentCount != 2 {
		t.Fatalf("expected 2 lyric segments, got %d", job.SegmentCount)
	}
	if !strings.Contains(job.SubtitleDoc, "first line") {
		t.Fatalf("expected rendered lyrics in subtitle doc:\n%s", job.SubtitleDoc)
	}
	if !strings.Contains(job.OutputPath, "song-lyrics-") {
		t.Fatalf("unexpected output path: %q", job.OutputPath)
	}

	// Later edits must not touch the queued document.
	if _, outcome := session.ImportLyrics("replacement", nil, nil); !outcome.Applied {
		t.Fatalf("second import skipped: %s", outcome.Reason)
	}
	stored, err := d.DescribeExport(ctx, job.ID)
	if err != nil {
		t.Fatalf("describe export: %v", err)
	}
	if strings.Contains(stored.SubtitleDoc, "replacement") {
		t.Fatal("queued subtitle doc changed after timeline edit")
	}
}

func TestEnqueueExportRequiresLyrics(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if _, err := d.EnqueueExport(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	openTestSession(d, "/videos/song.mp4", 180)
	if _, err := d.EnqueueExport(ctx); err == nil {
		t.Fatal("expected error exporting empty timeline")
	}
}

func TestStatusReportsSessionAndJobs(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	status := d.Status(ctx)
	if status.Running {
		t.Fatal("expected stopped daemon")
	}
	if status.SessionOpen {
		t.Fatal("expected no session")
	}

	session := openTestSession(d, "/videos/song.mp4", 240)
	if _, outcome := session.ImportLyrics("line", nil, nil); !outcome.Applied {
		t.Fatalf("import skipped: %s", outcome.Reason)
	}
	if _, err := d.EnqueueExport(ctx); err != nil {
		t.Fatalf("enqueue export: %v", err)
	}

	status = d.Status(ctx)
	if !status.SessionOpen || status.VideoPath != "/videos/song.mp4" {
		t.Fatalf("unexpected session status: %#v", status)
	}
	if status.Duration != 240 {
		t.Fatalf("unexpected duration: %v", status.Duration)
	}
	if status.SegmentCount != 1 {
		t.Fatalf("unexpected segment count: %d", status.SegmentCount)
	}
	if status.Jobs.Total != 1 || status.Jobs.Pending != 1 {
		t.Fatalf("unexpected job summary: %#v", status.Jobs)
	}
	if len(status.Dependencies) == 0 {
		t.Fatal("expected dependency statuses")
	}
}
