package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultDotEnvPaths are tried in order by LoadDotEnv.
var DefaultDotEnvPaths = []string{".env", "../.env"} //nolint:gochecknoglobals

// LoadDotEnv loads the first existing .env file into the process environment
// so its MATCHSCOPE_* entries reach Load. Variables already set are kept.
// It returns the loaded path, or "" when none of the files exist.
func LoadDotEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultDotEnvPaths
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		switch {
		case err == nil:
			return p, nil
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return "", fmt.Errorf("%w: %s: %w", ErrLoadConfig, p, err)
		}
	}
	return "", nil
}
