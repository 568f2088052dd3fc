// Package queue persists export jobs in SQLite.
//
// Timeline state is never persisted; only export jobs and their outcomes
// survive a daemon restart. Each job freezes the rendered subtitle document at
// enqueue time, so later timeline edits do not affect work already queued.
package queue
