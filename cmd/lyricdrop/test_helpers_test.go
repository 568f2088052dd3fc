package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricdrop/internal/config"
	"lyricdrop/internal/daemon"
	"lyricdrop/internal/ipc"
	"lyricdrop/internal/logging"
	"lyricdrop/internal/queue"
	"lyricdrop/internal/testsupport"
)

const testProbePayload = `{
  "streams": [
    {"codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"codec_name": "aac", "codec_type": "audio"}
  ],
  "format": {"filename": "clip.mp4", "format_name": "mov,mp4", "duration": "180.0", "size": "2048"}
}`

type cliTestEnv struct {
	cfg        *config.Config
	store      *queue.Store
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
	videoPath  string
	cancel     context.CancelFunc
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_RUNTIME_DIR", "")

	cfg := testsupport.NewConfig(t)
	cfg.Media.FFprobeBinary = writeProbeStub(t, base)

	videoPath := filepath.Join(base, "clip.mp4")
	if err := os.WriteFile(videoPath, []byte("not a real video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	configPath := filepath.Join(homeDir, ".config", "lyricdrop", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()

	d, err := daemon.New(cfg, store, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv, err := ipc.NewServer(ctx, cfg.Paths.Socket, d, logger)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	env := &cliTestEnv{
		cfg:        cfg,
		store:      store,
		daemon:     d,
		server:     srv,
		socketPath: cfg.Paths.Socket,
		configPath: configPath,
		videoPath:  videoPath,
		cancel:     cancel,
	}

	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Close()
	})

	return env
}

func writeProbeStub(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat <<'EOF'\n" + testProbePayload + "\nEOF\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	return path
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstate_dir = %q\nlog_dir = %q\nsocket = %q\n\n[media]\nffprobe_binary = %q\n\n[export]\noutput_dir = %q\n",
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.Paths.Socket,
		cfg.Media.FFprobeBinary,
		cfg.Export.OutputDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func openTestVideo(t *testing.T, env *cliTestEnv) {
	t.Helper()
	out, _, err := runCLI(t, []string{"open", env.videoPath}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("open video: %v", err)
	}
	requireContains(t, out, "Opened")
}

func importTestLyrics(t *testing.T, env *cliTestEnv, lines ...string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "lyrics.txt")
	if err := os.WriteFile(file, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write lyrics: %v", err)
	}
	out, _, err := runCLI(t, []string{"lyrics", "import", "--file", file}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("lyrics import: %v", err)
	}
	requireContains(t, out, "Imported")
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
