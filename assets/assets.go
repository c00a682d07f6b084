// Package assets embeds static files served by the web UI.
package assets

import _ "embed"

//go:embed index.html
var Index []byte
