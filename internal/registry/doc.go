// Package registry discovers activity manifests and maps each
// (subject, slug) pair to its Activity.
//
// The Registry is built once at startup (or rebuilt from scratch on an
// explicit refresh) by walking `<activities>/<subject>/**/*.{hcl,json}`.
// Each manifest declares a single `activity` block whose attributes are read
// as data; no activity code runs during discovery. The render entry is bound
// by name from the handlers table, which compiled Go packages fill in.
//
// After Build returns, the Registry is never mutated and is safe to share
// between concurrent requests.
package registry
