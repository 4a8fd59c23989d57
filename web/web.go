// Package web holds the HTML templates and static assets, embedded into the
// binary so the server runs from any working directory.
package web

import "embed"

// Templates contains templates/*.html. Every page is base.html plus one view
// file that defines the "content" block.
//
//go:embed templates/*.html
var Templates embed.FS

// Static contains static/*, served under /static/.
//
//go:embed static
var Static embed.FS
