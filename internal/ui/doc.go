// Package ui provides helpers for formatting human-readable console diagnostics.
//
// The helpers translate git invocation events into concise messages when the
// console log format is selected, while structured logs continue to flow through
// the shell executor itself.
package ui
