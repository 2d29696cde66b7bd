package content

import (
	"embed"
	"io/fs"
)

//go:embed blocks/*
var embeddedBlocks embed.FS

// EmbeddedFS returns the bundled sample blocks. Callers may pass this
// filesystem to LoadFS to try the renderer without their own content.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedBlocks, "blocks")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
