package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment overrides, read after the optional .env file is loaded.
const (
	EnvDBPath   = "HILO_DB_PATH"
	EnvLogLevel = "HILO_LOG_LEVEL"
	EnvLogFile  = "HILO_LOG_FILE"
)

// Env holds the environment overrides. Empty means unset.
type Env struct {
	DBPath   string
	LogLevel string
	LogFile  string
}

// LoadEnv loads the given dotenv files (missing files are skipped) and reads
// the HILO_* overrides. Variables already set in the process win over the file.
func LoadEnv(files ...string) (Env, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Env{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return Env{
		DBPath:   strings.TrimSpace(os.Getenv(EnvDBPath)),
		LogLevel: strings.TrimSpace(os.Getenv(EnvLogLevel)),
		LogFile:  strings.TrimSpace(os.Getenv(EnvLogFile)),
	}, nil
}

// DBPathOrDefault returns the override or the XDG default.
func (e Env) DBPathOrDefault() string {
	if e.DBPath != "" {
		return e.DBPath
	}
	return DefaultDBPath()
}
