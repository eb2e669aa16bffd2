//go:build noui

package frontend

import (
	"embed"
)

// Empty FS for builds without the UI bundle; only the API is served.
var embeddedFiles embed.FS
