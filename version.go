package tvault

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version exposes the version of the library.
var Version = strings.TrimSpace(version)
