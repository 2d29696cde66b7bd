// Package content loads FormBlock documents from JSON or YAML files and
// exposes them by block id. String props are stripped of markup on load.
package content
