// Package render defines the presentation contract shared by renderers: a
// Renderer turns a form.Snapshot into bytes, a Registry looks renderers up
// by name, and the class helpers resolve classification tags, optionally
// from a go-theme selection.
package render
