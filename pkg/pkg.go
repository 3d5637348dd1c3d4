//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the rapture module embedded at build
// time. It is printed by the CLI when users pass --version.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "rapture"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Interpreter for the Rapira programming language"
	// PathEnv names the environment variable holding the list of directories
	// searched for program files.
	PathEnv = "RAPTURE_PATH"
)

// Extension is the file name extension of Rapira source files.
const Extension = ".rap"
