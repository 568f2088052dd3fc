package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultStateDir       = "~/.local/share/lyricdrop"
	defaultLogDir         = "~/.local/share/lyricdrop/logs"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultProbeTimeout   = 30
	defaultSpacerDuration = 2.0
	defaultZoomMin        = 0.5
	defaultZoomMax        = 4.0
	defaultOutputDir      = "~/lyricdrop/exports"
	defaultFontName       = "DejaVu Sans"
	defaultFontSize       = 48
	defaultPrimaryColor   = "&H00FFFFFF"
	defaultCRF            = 18
	defaultPreset         = "medium"
	defaultBurnTimeout    = 3600
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			Socket:   defaultSocketPath(),
		},
		Media: Media{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			ProbeTimeout:  defaultProbeTimeout,
		},
		Editor: Editor{
			SpacerDuration: defaultSpacerDuration,
			ZoomMin:        defaultZoomMin,
			ZoomMax:        defaultZoomMax,
		},
		Export: Export{
			OutputDir:    defaultOutputDir,
			FontName:     defaultFontName,
			FontSize:     defaultFontSize,
			PrimaryColor: defaultPrimaryColor,
			CRF:          defaultCRF,
			Preset:       defaultPreset,
			BurnTimeout:  defaultBurnTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultSocketPath() string {
	if base, ok := os.LookupEnv("XDG_RUNTIME_DIR"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "lyricdrop", "lyricdropd.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/lyricdrop/lyricdropd.sock"
	}
	return filepath.Join(home, ".local", "share", "lyricdrop", "lyricdropd.sock")
}
