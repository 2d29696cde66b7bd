// Package styles maps the theme style intents of a block (margin, padding,
// border, alignment) onto Tailwind class names. Every function is pure.
package styles
