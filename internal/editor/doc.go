// Package editor owns the mutable editing state for a lyric timeline session.
//
// SegmentStore and SectionStore hold the segment and section collections and
// implement the full mutation protocol: lyric import and append, cascading
// timing updates, spacer insertion and removal, section add/remove, and
// proportional redistribution on section resize. The Session wraps both stores
// behind one mutex so every mutation runs to completion before the next, keeps
// the adjacent playback state (selection, playhead, zoom), and notifies
// subscribers with immutable snapshots after each change.
//
// Recoverable bad input (unknown ids, empty imports, overlapping sections)
// never returns an error; operations report an Outcome and leave state
// untouched so stale UI actions cannot crash a session.
package editor
