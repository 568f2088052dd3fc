// Package daemon coordinates the lyricdrop background process.
//
// A daemon owns at most one editing session at a time, the export job store,
// and the worker that burns queued exports. It enforces single-instance
// execution through a file lock so two daemons never fight over the same
// state directory.
package daemon
