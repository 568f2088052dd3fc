package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lyricdrop/internal/config"
	"lyricdrop/internal/logging"
	"lyricdrop/internal/queue"
)

// Burner runs ffmpeg to burn a job's subtitle document into its video.
type Burner struct {
	binary  string
	crf     int
	preset  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewBurner builds a Burner from export configuration.
func NewBurner(cfg *config.Config, logger *slog.Logger) *Burner {
	binary := "ffmpeg"
	crf := 18
	preset := "medium"
	timeout := time.Hour
	if cfg != nil {
		binary = cfg.Media.FFmpegBinary
		crf = cfg.Export.CRF
		preset = cfg.Export.Preset
		timeout = time.Duration(cfg.Export.BurnTimeout) * time.Second
	}
	return &Burner{
		binary:  binary,
		crf:     crf,
		preset:  preset,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "burner"),
	}
}

// Burn renders the job. The subtitle document is written to a scratch file
// that lives only as long as the ffmpeg invocation.
func (b *Burner) Burn(ctx context.Context, job *queue.Job) error {
	if job == nil {
		return fmt.Errorf("burn: nil job")
	}
	if strings.TrimSpace(job.SubtitleDoc) == "" {
		return fmt.Errorf("burn: job %d has no subtitle document", job.ID)
	}

	scratch, err := os.MkdirTemp("", "lyricdrop-burn-")
	if err != nil {
		return fmt.Errorf("burn: scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	assPath := filepath.Join(scratch, "lyrics.ass")
	if err := os.WriteFile(assPath, []byte(job.SubtitleDoc), 0o644); err != nil {
		return fmt.Errorf("burn: write subtitle doc: %w", err)
	}

	if dir := filepath.Dir(job.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("burn: create output dir: %w", err)
		}
	}

	runCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	args := b.buildArgs(job.VideoPath, assPath, job.OutputPath)
	b.logger.Debug("starting burn",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String("output", job.OutputPath),
	)

	cmd := exec.CommandContext(runCtx, b.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("burn: timed out after %s", b.timeout)
		}
		return fmt.Errorf("burn: %w: %s", err, tailOf(string(output), 800))
	}
	return nil
}

func (b *Burner) buildArgs(videoPath, assPath, outputPath string) []string {
	return []string{
		"-hide_banner", "-y",
		"-i", videoPath,
		"-vf", "ass=" + escapeFilterPath(assPath),
		"-c:v", "libx264",
		"-crf", strconv.Itoa(b.crf),
		"-preset", b.preset,
		"-c:a", "copy",
		outputPath,
	}
}

// escapeFilterPath quotes a path for use inside an ffmpeg filter expression,
// where colons and quotes are metacharacters.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `'`, `\'`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	return path
}

func tailOf(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}
