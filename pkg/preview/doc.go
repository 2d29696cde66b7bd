// Package preview serves form blocks over HTTP so authors can try a block
// against a real form backend before publishing it.
//
// Every block gets one submission.Controller for the lifetime of the server,
// so the status line reflects the last submission made through the preview.
package preview
