package config

import "errors"

// ErrThemeNotFound indicates a theme name that no bundled or user theme
// provides. Surfaced to IPC clients as the SetTheme error message.
var ErrThemeNotFound = errors.New("theme not found")
