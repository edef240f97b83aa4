package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvFFmpegPath = "TUBEFX_FFMPEG"
	EnvLogLevel   = "TUBEFX_LOG_LEVEL"
	EnvTempDir    = "TUBEFX_TEMP_DIR"
)

// Env defaults
const (
	DefaultEnvFile  = ".env"
	DefaultLogLevel = "info"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Env holds the overrides read from the process environment
type Env struct {
	FFmpegPath string
	LogLevel   string
	TempDir    string
}

// LoadDotEnv loads the given files, or ".env" when none is given, into the
// process environment. Missing files are not an error; variables already
// set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// FromEnv reads the overrides from the environment
func FromEnv() Env {
	env := Env{
		FFmpegPath: strings.TrimSpace(os.Getenv(EnvFFmpegPath)),
		LogLevel:   strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))),
		TempDir:    strings.TrimSpace(os.Getenv(EnvTempDir)),
	}
	if env.LogLevel == "" {
		env.LogLevel = DefaultLogLevel
	}
	return env
}

// Validate checks the log level and the temp directory
func (e Env) Validate() error {
	if !validLogLevels[e.LogLevel] {
		return fmt.Errorf("invalid %s %q, must be one of debug, info, warn, error", EnvLogLevel, e.LogLevel)
	}
	if e.TempDir != "" {
		info, err := os.Stat(e.TempDir)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTempDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("invalid %s: %s is not a directory", EnvTempDir, e.TempDir)
		}
	}
	return nil
}
