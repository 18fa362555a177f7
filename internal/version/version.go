// Package version holds the build version of the application.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/ndewijer/Portfolio-Tracker-Backend/internal/version.Version=v1.2.3".
var Version = "dev"
