// Package template defines the template engine seam used by renderers.
package template
