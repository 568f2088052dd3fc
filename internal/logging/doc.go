// Package logging assembles the structured slog loggers used by the lyricdrop
// daemon and CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and standardizes attribute keys so session operations, export
// jobs, and IPC requests log with a consistent shape. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data in the same format as the rest of the system.
package logging
