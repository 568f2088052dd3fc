// Package deps reports the availability of the external binaries lyricdrop
// shells out to. The daemon checks these at startup and the CLI surfaces them
// in status output so a missing ffmpeg is diagnosed before an export fails.
package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"lyricdrop/internal/config"
)

// Requirement defines an external dependency lyricdrop relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries the daemon needs, resolved from
// configuration.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg := "ffmpeg"
	ffprobe := "ffprobe"
	if cfg != nil {
		ffmpeg = cfg.Media.FFmpegBinary
		ffprobe = cfg.Media.FFprobeBinary
	}
	reqs := []Requirement{
		{Name: "FFprobe", Command: ffprobe, Description: "Probes video duration and streams"},
		{Name: "FFmpeg", Command: ffmpeg, Description: "Burns lyrics into exported videos"},
	}
	if cmd := clipboardCommand(); cmd != "" {
		reqs = append(reqs, Requirement{
			Name:        "Clipboard",
			Command:     cmd,
			Description: "Enables clipboard lyric import",
			Optional:    true,
		})
	}
	return reqs
}

// clipboardCommand names the binary the clipboard library shells out to on
// this platform, or empty when the platform needs no helper.
func clipboardCommand() string {
	switch runtime.GOOS {
	case "linux", "freebsd", "netbsd", "openbsd":
		return "xclip"
	case "darwin":
		return "pbpaste"
	default:
		return ""
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are
// unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
