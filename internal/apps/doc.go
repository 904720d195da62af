// Package apps scans XDG desktop entries into launcher items.
//
// Scan walks the standard application directories plus any configured
// extras, parses .desktop files, and filters entries the launcher should
// not offer (NoDisplay, Hidden). Watch keeps the index fresh by rescanning
// after filesystem changes, debounced so editor save storms collapse into
// one reload.
package apps
