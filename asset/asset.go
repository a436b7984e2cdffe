// Package asset embeds the default overlay clips and particle textures.
// Sources refer to these files as "embed:<path>", e.g. "embed:overlays/journey.gif".
package asset

import (
	"embed"
	"io/fs"
)

//go:embed overlays textures
var files embed.FS

// FS returns the embedded asset tree
func FS() fs.FS {
	return files
}
