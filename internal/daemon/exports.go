package daemon

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"lyricdrop/internal/export"
	"lyricdrop/internal/logging"
	"lyricdrop/internal/queue"
)

// EnqueueExport renders the current timeline to a subtitle document and
// queues a burn job for it. The document is frozen at enqueue time; later
// edits do not touch queued work.
func (d *Daemon) EnqueueExport(ctx context.Context) (*queue.Job, error) {
	session, err := d.Session()
	if err != nil {
		return nil, err
	}

	snapshot := session.Snapshot()
	if strings.TrimSpace(snapshot.VideoPath) == "" {
		return nil, fmt.Errorf("offline session has no video to export")
	}
	lyricCount := 0
	for _, segment := range snapshot.Segments {
		if !segment.IsSpacer() {
			lyricCount++
		}
	}
	if lyricCount == 0 {
		return nil, fmt.Errorf("timeline has no lyric segments to export")
	}

	doc := export.Render(snapshot, export.StyleFromConfig(d.cfg))
	outputPath := d.exportOutputPath(snapshot.VideoPath)

	job, err := d.store.NewJob(ctx, snapshot.VideoPath, outputPath, doc, lyricCount, int64(snapshot.Revision))
	if err != nil {
		return nil, err
	}

	d.logger.Info("export job queued",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String("output", outputPath),
		logging.Int("segments", lyricCount),
	)
	return job, nil
}

// ListExports returns all export jobs, newest first.
func (d *Daemon) ListExports(ctx context.Context) ([]*queue.Job, error) {
	return d.store.List(ctx)
}

// DescribeExport fetches a single export job.
func (d *Daemon) DescribeExport(ctx context.Context, id int64) (*queue.Job, error) {
	return d.store.GetByID(ctx, id)
}

// ClearExports removes terminal export jobs.
func (d *Daemon) ClearExports(ctx context.Context) (int64, error) {
	removed, err := d.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	d.logger.Info("export history cleared", logging.Int64("removed_count", removed))
	return removed, nil
}

func (d *Daemon) exportOutputPath(videoPath string) string {
	base := filepath.Base(videoPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".mp4"
	}
	stamp := time.Now().UTC().Format("20060102-150405")
	return filepath.Join(d.cfg.Export.OutputDir, fmt.Sprintf("%s-lyrics-%s%s", stem, stamp, ext))
}
