// Package config loads and persists lumen configuration.
//
// Configuration lives in ~/.config/lumen/config.toml and is optional: a
// missing file yields defaults, and the file is never created implicitly.
// Writes happen only through Store.SetTheme when the file already exists,
// serialized with a flock so concurrent writers cannot clobber each other.
//
// The package also owns the theme catalogue: bundled themes are embedded
// into the binary, user themes live in ~/.config/lumen/themes/. The
// "default" theme is defined in code and always available.
package config
