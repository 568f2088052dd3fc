// Package timeline defines the segment and section model for lyric timing and
// the pure functions that transform it.
//
// Segments are contiguous time intervals carrying either lyric text or silence
// (spacers). Sections are named time ranges that group a contiguous run of
// segments. All timing arithmetic uses float64 seconds and all helpers return
// new values instead of mutating their inputs, so callers can build mutation
// protocols on top without aliasing surprises.
//
// Stateful editing lives in internal/editor; keep this package free of
// selection, playback, and I/O concerns.
package timeline
