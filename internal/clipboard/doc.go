// Package clipboard captures clipboard contents and persists a bounded
// history so entries survive daemon restarts.
package clipboard
