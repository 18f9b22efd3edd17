package logger

import "github.com/lagerlog/lager/core"

// Verbosity Re-export type for convenience
type Verbosity = core.Verbosity

// ParseVerbosity converts a configuration string to a Verbosity.
// See core.ParseVerbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	return core.ParseVerbosity(s)
}
