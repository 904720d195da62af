// Package daemon runs the launcher's event loop. A single goroutine
// owns the visibility state machine and the live window handle; every
// other component reaches it only through the event queue.
package daemon
