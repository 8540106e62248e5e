package version

import (
	"fmt"
	"runtime"
)

// Build-time variables injected by ldflags
var (
	Version   = "dev"     // Version of the application
	BuildTime = "unknown" // Build timestamp
)

// GetVersion returns the application version
func GetVersion() string {
	return Version
}

// GetFullVersionString returns a comprehensive version string
func GetFullVersionString() string {
	return fmt.Sprintf("mcplab %s\nBuilt: %s\nGo: %s",
		Version, BuildTime, runtime.Version())
}
