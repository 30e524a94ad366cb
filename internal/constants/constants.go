// Package constants defines global constants used throughout callscope.
// It includes version information and shared identifiers for both handlers.
package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of callscope.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the application.
const ProjectName = "callscope"
