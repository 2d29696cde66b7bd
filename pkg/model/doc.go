// Package model defines the typed FormBlock props consumed by renderers and the
// submission pipeline. Field descriptors are deliberately loose: the model name
// selects a field renderer while every other key authored in the CMS travels
// untouched in Props so field renderers can read the knobs they understand
// (label, placeholder, isRequired, width, options, ...). Styles mirror the
// `styles.self` record used by the site theme and are only ever mapped to class
// names.
package model
