// Package template defines the rendering-engine seam used by the HTML
// preview renderer.
package template
