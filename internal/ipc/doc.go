// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management, request/response DTOs, and conversions
// between editor snapshots and lightweight wire representations. Timeline
// mutations return a MutationResponse rather than an error when skipped, so
// the CLI can explain why nothing changed.
//
// Reuse these types when adding new RPC endpoints to keep the protocol stable
// and compatible with existing command implementations.
package ipc
