package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMedia()
	c.normalizeEditor()
	if err := c.normalizeExport(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Socket) == "" {
		c.Paths.Socket = defaultSocketPath()
	}
	if c.Paths.Socket, err = expandPath(c.Paths.Socket); err != nil {
		return fmt.Errorf("paths.socket: %w", err)
	}
	return nil
}

func (c *Config) normalizeMedia() {
	c.Media.FFmpegBinary = strings.TrimSpace(c.Media.FFmpegBinary)
	if c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = defaultFFmpegBinary
	}
	c.Media.FFprobeBinary = strings.TrimSpace(c.Media.FFprobeBinary)
	if c.Media.FFprobeBinary == "" {
		c.Media.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Media.ProbeTimeout <= 0 {
		c.Media.ProbeTimeout = defaultProbeTimeout
	}
}

func (c *Config) normalizeEditor() {
	if c.Editor.SpacerDuration <= 0 {
		c.Editor.SpacerDuration = defaultSpacerDuration
	}
	if c.Editor.ZoomMin <= 0 {
		c.Editor.ZoomMin = defaultZoomMin
	}
	if c.Editor.ZoomMax <= 0 {
		c.Editor.ZoomMax = defaultZoomMax
	}
}

func (c *Config) normalizeExport() error {
	var err error
	if strings.TrimSpace(c.Export.OutputDir) == "" {
		c.Export.OutputDir = defaultOutputDir
	}
	if c.Export.OutputDir, err = expandPath(c.Export.OutputDir); err != nil {
		return fmt.Errorf("export.output_dir: %w", err)
	}
	c.Export.FontName = strings.TrimSpace(c.Export.FontName)
	if c.Export.FontName == "" {
		c.Export.FontName = defaultFontName
	}
	if c.Export.FontSize <= 0 {
		c.Export.FontSize = defaultFontSize
	}
	c.Export.PrimaryColor = strings.TrimSpace(c.Export.PrimaryColor)
	if c.Export.PrimaryColor == "" {
		c.Export.PrimaryColor = defaultPrimaryColor
	}
	c.Export.Preset = strings.ToLower(strings.TrimSpace(c.Export.Preset))
	if c.Export.Preset == "" {
		c.Export.Preset = defaultPreset
	}
	if c.Export.BurnTimeout <= 0 {
		c.Export.BurnTimeout = defaultBurnTimeout
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
