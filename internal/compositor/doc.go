// Package compositor abstracts window listing and focus switching across
// Wayland compositors. Backends normalize their own wire formats into a
// single WindowInfo shape; nothing backend-specific crosses the package
// boundary.
package compositor
