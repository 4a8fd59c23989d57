package cli

import "os"

// resolveConfigPath prefers the --config flag, then CONFIG_PATH.
// An empty result means "environment and defaults only".
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}
