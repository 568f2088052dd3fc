package config

import (
	"errors"
	"fmt"
	"strings"
)

var validPresets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEditor() error {
	if c.Editor.SpacerDuration <= 0 {
		return errors.New("editor.spacer_duration must be positive (seconds)")
	}
	if c.Editor.ZoomMin <= 0 {
		return errors.New("editor.zoom_min must be positive")
	}
	if c.Editor.ZoomMax <= c.Editor.ZoomMin {
		return errors.New("editor.zoom_max must be greater than editor.zoom_min")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if strings.TrimSpace(c.Media.FFmpegBinary) == "" {
		return errors.New("media.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(c.Media.FFprobeBinary) == "" {
		return errors.New("media.ffprobe_binary must be set")
	}
	if c.Media.ProbeTimeout <= 0 {
		return errors.New("media.probe_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.FontSize <= 0 {
		return errors.New("export.font_size must be positive")
	}
	if c.Export.CRF < 0 || c.Export.CRF > 51 {
		return errors.New("export.crf must be between 0 and 51")
	}
	if _, ok := validPresets[c.Export.Preset]; !ok {
		return fmt.Errorf("export.preset %q is not a recognized x264 preset", c.Export.Preset)
	}
	if c.Export.BurnTimeout <= 0 {
		return errors.New("export.burn_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
