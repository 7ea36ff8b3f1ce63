// Package legend provides the embedded display legend: glyph, name and color
// for every terrain label and overlay kind.
package legend

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
