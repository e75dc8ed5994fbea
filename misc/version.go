// Package misc holds build time information.
package misc

// Set by the linker: -ldflags "-X folio/misc.version=... -X folio/misc.githash=..."
var (
	version = "dev"
	githash = "unknown"
)

const appName = "folio"

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit the program was built from.
func GetGitHash() string {
	return githash
}

// GetAppName returns short program name used for logs, temporary files and reports.
func GetAppName() string {
	return appName
}
