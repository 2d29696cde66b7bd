// Package template defines the template engine seam the HTML renderer relies
// on. Theme partial overrides are plain template names resolved through it.
package template
