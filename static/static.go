// Package static, HTML template'lerini ve admin/public asset'lerini binary'ye gömer.
//
// templates/ handlers.Renderer tarafından parse edilir, assets/ ise
// /assets/ altında http.FileServer ile servis edilir.
package static

import (
	"embed"
	"io/fs"
)

//go:embed templates assets
var FS embed.FS

// Assets, /assets/ prefix'i olmadan asset dosyalarını döner.
func Assets() fs.FS {
	sub, err := fs.Sub(FS, "assets")
	if err != nil {
		// embed dizini derleme zamanında garanti edilir.
		panic(err)
	}
	return sub
}
