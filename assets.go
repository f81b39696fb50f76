package ebookform

import (
	"embed"
	"io/fs"
)

// StylesheetName is the stylesheet inside AssetsFS styling both the form and
// the summary.
const StylesheetName = "ebookform.css"

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the static assets committed under assets/ so Go
// applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(ebookform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
