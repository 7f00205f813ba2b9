// Package msg defines the message types used by the TUI's Bubbletea event loop.
//
// Live session updates, replay ticks, follow-mode reloads and clipboard
// results all reach the model as messages from this package, so background
// goroutines never touch the model directly.
package msg
