// Package probe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe against a video file and returns the container
// duration, dimensions, and stream facts the editing session needs before it
// will accept the file. Files without a video stream or a usable duration are
// rejected here rather than surfacing later as broken timelines.
package probe
