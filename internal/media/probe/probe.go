package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// MediaInfo describes the properties of a video file that the editing
// session cares about.
type MediaInfo struct {
	Path            string
	FormatName      string
	DurationSeconds float64
	SizeBytes       int64
	Width           int
	Height          int
	VideoCodec      string
	HasAudio        bool
}

type ffprobePayload struct {
	Streams []struct {
		CodecName string `json:"codec_name"`
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Filename   string `json:"filename"`
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
	} `json:"format"`
}

// Inspect executes ffprobe against the provided path and extracts the video
// properties needed to open an editing session.
func Inspect(ctx context.Context, binary string, path string) (MediaInfo, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return MediaInfo{}, errors.New("probe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return MediaInfo{}, fmt.Errorf("probe %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}

	var payload ffprobePayload
	if err := json.Unmarshal(output, &payload); err != nil {
		return MediaInfo{}, fmt.Errorf("probe parse: %w", err)
	}
	return fromPayload(payload)
}

func fromPayload(payload ffprobePayload) (MediaInfo, error) {
	info := MediaInfo{
		Path:       payload.Format.Filename,
		FormatName: payload.Format.FormatName,
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(payload.Format.Duration), 64)
	if err != nil || duration <= 0 {
		return MediaInfo{}, fmt.Errorf("probe: container reports no usable duration (%q)", payload.Format.Duration)
	}
	info.DurationSeconds = duration

	if size, err := strconv.ParseInt(strings.TrimSpace(payload.Format.Size), 10, 64); err == nil && size > 0 {
		info.SizeBytes = size
	}

	hasVideo := false
	for _, stream := range payload.Streams {
		switch strings.ToLower(stream.CodecType) {
		case "video":
			if !hasVideo {
				info.Width = stream.Width
				info.Height = stream.Height
				info.VideoCodec = stream.CodecName
			}
			hasVideo = true
		case "audio":
			info.HasAudio = true
		}
	}
	if !hasVideo {
		return MediaInfo{}, errors.New("probe: file has no video stream")
	}

	return info, nil
}
