// Package store holds the client-side view state: three independent
// containers for upload progress, rule configuration and the entity browser.
// Stores are plain constructor-instantiated values so tests and TUI pages
// get isolated instances; there are no package-level singletons.
//
// All mutations are synchronous last-writer-wins replacements of the
// relevant slice of state. There is exactly one writer (the current
// process), so no conflict resolution is needed; the mutexes only guard
// against concurrent reads from render goroutines.
package store
