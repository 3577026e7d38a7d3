package version

// Version is the current release of prcompile.
const Version = "1.0.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}
