package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"lyricdrop/internal/config"
	"lyricdrop/internal/deps"
	"lyricdrop/internal/editor"
	"lyricdrop/internal/export"
	"lyricdrop/internal/logging"
	"lyricdrop/internal/media/probe"
	"lyricdrop/internal/queue"
)

// ErrNoSession is returned by session operations when no video is open.
var ErrNoSession = errors.New("no editing session open")

// Daemon coordinates the editing session and export services and enforces
// single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *queue.Store

	lockPath string
	lock     *flock.Flock

	mu      sync.Mutex
	session *editor.Session

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	workerWG sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	LockFilePath string
	JobDBPath    string
	SessionOpen  bool
	VideoPath    string
	Duration     float64
	Revision     uint64
	SegmentCount int
	SectionCount int
	Jobs         queue.Summary
	Dependencies []deps.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("daemon requires config and job store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the export worker.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another lyricdrop daemon instance is already running")
	}

	if failed, err := d.store.FailInFlight(ctx, "Interrupted by daemon restart"); err != nil {
		d.logger.Warn("reset in-flight jobs", logging.Error(err))
	} else if failed > 0 {
		d.logger.Info("failed interrupted export jobs", logging.Int64("count", failed))
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	burner := export.NewBurner(d.cfg, d.logger)
	worker := export.NewWorker(d.store, burner, d.logger)
	d.workerWG.Add(1)
	go func() {
		defer d.workerWG.Done()
		worker.Run(d.ctx)
	}()

	d.running.Store(true)
	d.logger.Info("lyricdrop daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.workerWG.Wait()

	if _, err := d.store.FailInFlight(context.Background(), queue.DaemonStopReason); err != nil {
		d.logger.Warn("fail in-flight jobs on stop", logging.Error(err))
	}

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("lyricdrop daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// OpenVideo probes the file and opens a fresh editing session for it,
// replacing any session already open. Timeline state never persists, so the
// previous session is simply discarded.
func (d *Daemon) OpenVideo(ctx context.Context, path string) (editor.Snapshot, error) {
	info, err := probe.Inspect(ctx, d.cfg.Media.FFprobeBinary, path)
	if err != nil {
		return editor.Snapshot{}, err
	}

	session := editor.NewSession(editor.Options{
		VideoPath:      path,
		Duration:       info.DurationSeconds,
		SpacerDuration: d.cfg.Editor.SpacerDuration,
		ZoomMin:        d.cfg.Editor.ZoomMin,
		ZoomMax:        d.cfg.Editor.ZoomMax,
		Logger:         d.logger,
	})

	d.mu.Lock()
	d.session = session
	d.mu.Unlock()

	d.logger.Info("opened editing session",
		logging.String("video", path),
		logging.Float64("duration", info.DurationSeconds),
	)
	return session.Snapshot(), nil
}

// OpenOffline opens an editing session of the given duration with no video
// attached, for timing lyrics before the footage is available. Offline
// sessions cannot be exported.
func (d *Daemon) OpenOffline(duration float64) (editor.Snapshot, error) {
	if duration <= 0 {
		return editor.Snapshot{}, fmt.Errorf("offline session duration must be positive, got %v", duration)
	}

	session := editor.NewSession(editor.Options{
		Duration:       duration,
		SpacerDuration: d.cfg.Editor.SpacerDuration,
		ZoomMin:        d.cfg.Editor.ZoomMin,
		ZoomMax:        d.cfg.Editor.ZoomMax,
		Logger:         d.logger,
	})

	d.mu.Lock()
	d.session = session
	d.mu.Unlock()

	d.logger.Info("opened offline editing session", logging.Float64("duration", duration))
	return session.Snapshot(), nil
}

// CloseSession discards the current editing session, if any.
func (d *Daemon) CloseSession() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	had := d.session != nil
	d.session = nil
	if had {
		d.logger.Info("closed editing session")
	}
	return had
}

// Session returns the open editing session, or ErrNoSession.
func (d *Daemon) Session() (*editor.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return nil, ErrNoSession
	}
	return d.session, nil
}

// Status reports daemon runtime information.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		LockFilePath: d.lockPath,
		JobDBPath:    d.store.Path(),
		Dependencies: deps.CheckBinaries(deps.Requirements(d.cfg)),
	}

	d.mu.Lock()
	session := d.session
	d.mu.Unlock()
	if session != nil {
		snapshot := session.Snapshot()
		status.SessionOpen = true
		status.VideoPath = snapshot.VideoPath
		status.Duration = snapshot.Duration
		status.Revision = snapshot.Revision
		status.SegmentCount = len(snapshot.Segments)
		status.SectionCount = len(snapshot.Sections)
	}

	if summary, err := d.store.Summarize(ctx); err == nil {
		status.Jobs = summary
	} else {
		d.logger.Warn("summarize export jobs", logging.Error(err))
	}

	return status
}
