package paths

import (
	"flag"
)

// SetupDirPathFlag creates a string flag with the passed name, defaulting
// to the first existing candidate directory found by FindDir. If none is
// found, the flag defaults to an empty string.
func SetupDirPathFlag(flagName, usage string, flagPtr *string, candidates ...string) {
	flag.StringVar(flagPtr, flagName, FindDir(candidates...), usage)
}
