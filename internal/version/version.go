// Package version holds the build version of the application.
package version

// Version is the application version. Overridden at build time via
// -ldflags "-X .../internal/version.Version=x.y.z".
var Version = "dev"
