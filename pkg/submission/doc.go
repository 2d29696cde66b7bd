// Package submission implements the FormBlock submit routine: an explicit
// State with a pure reducer, the live form values a submission reads and
// resets, an order preserving urlencoded codec, the HTTP transport that posts
// to the site root and a Controller that ties them together.
//
// Failures never escape a Controller. A non-ok response and a transport error
// both end in the same generic message; the underlying error is only logged.
package submission
