// Package export renders timeline snapshots to ASS subtitle documents and
// burns them into video with ffmpeg.
//
// Rendering happens at enqueue time against an immutable Snapshot, so the
// subtitle document a job carries reflects the timeline exactly as it was
// when the export was requested. Sections are emitted as comment markers for
// anyone inspecting the generated file; spacers produce no dialogue.
package export
