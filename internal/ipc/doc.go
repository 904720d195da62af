// Package ipc exposes the daemon over JSON-RPC and ships the matching
// client used by the CLI.
//
// It owns endpoint lifecycle management, the request/response DTOs, and
// the single-instance guarantee: binding probes the endpoint for a live
// peer and refuses to start a second daemon, while a stale socket left by
// a crashed process is removed and rebound. Commands are forwarded to the
// daemon event loop through the event queue; read-only queries are
// answered in place.
package ipc
