// Package event carries commands and window events into the daemon loop.
//
// A single unbounded Queue unifies IPC commands, UI window events, and
// background watcher notifications into one ordered stream with exactly one
// consumer. Events that expect an answer carry a Reply slot that delivers
// at most one response; delivering into an abandoned slot is a silent no-op.
package event
