// Package logging builds slog loggers for the lumen daemon and CLI.
//
// It owns level parsing, output fan-out (stdout/stderr/files), and the two
// handler flavors: a compact console handler for interactive use and a JSON
// handler for log files. Attribute helpers keep field names consistent
// across components.
package logging
