package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AD7six/envgen/internal/logging"
	"github.com/AD7six/envgen/internal/render"
)

// DefaultSettingsFile is read, if present, for settings not set in the environment.
const DefaultSettingsFile = "envgen.env"

// Settings contains configuration for source generation.
type Settings struct {
	Input                    string      // Env file to read, defaults to ".env"
	OutputPattern            string      // Output path template, defaults to "{dir}/{name}.rs"
	Mode                     render.Mode // Output shape, "lazy" (default) or "const"
	TypesFile                string      // Optional YAML file of type overrides
	ClearCommentsOnBlankLine bool        // Drop comments separated from their key by a blank line, defaults to true
	WriteComments            bool        // Copy comments into the output, defaults to true
	LogLevel                 string      // debug, info, warn or error, defaults to info
}

// LoadSettings loads configuration from environment variables and an
// optional settings file; environment variables take precedence.
// Variables: ENVGEN_INPUT, ENVGEN_OUTPUT, ENVGEN_MODE, ENVGEN_TYPES_FILE,
// ENVGEN_CLEAR_COMMENTS_ON_BLANK, ENVGEN_WRITE_COMMENTS, LOG_LEVEL.
func LoadSettings(settingsFile string) (*Settings, error) {
	file := map[string]string{}
	if settingsFile != "" {
		vals, err := godotenv.Read(settingsFile)
		switch {
		case err == nil:
			file = vals
		case errors.Is(err, fs.ErrNotExist):
			// optional
		default:
			logging.Logger.Warn("error loading settings file", "path", settingsFile, "error", err)
		}
	}
	env := lookup{file: file}

	var mode render.Mode
	if err := mode.Set(env.get("ENVGEN_MODE", string(render.ModeLazy))); err != nil {
		return nil, fmt.Errorf("ENVGEN_MODE: %w", err)
	}

	return &Settings{
		Input:                    env.get("ENVGEN_INPUT", ".env"),
		OutputPattern:            env.get("ENVGEN_OUTPUT", "{dir}/{name}.rs"),
		Mode:                     mode,
		TypesFile:                env.get("ENVGEN_TYPES_FILE", ""),
		ClearCommentsOnBlankLine: env.getBool("ENVGEN_CLEAR_COMMENTS_ON_BLANK", true),
		WriteComments:            env.getBool("ENVGEN_WRITE_COMMENTS", true),
		LogLevel:                 env.get("LOG_LEVEL", "info"),
	}, nil
}

// lookup resolves a setting from the environment, then the settings file.
type lookup struct {
	file map[string]string
}

// get the variable with a default
func (l lookup) get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v, ok := l.file[key]; ok && v != "" {
		return v
	}
	return def
}

// getBool returns a boolean variable with support for common truthy/falsey strings, defaulting when unset/empty.
func (l lookup) getBool(key string, def bool) bool {
	v := l.get(key, "")
	if v == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		logging.Logger.Warn("ignoring invalid boolean setting", "key", key, "value", v)
		return def
	}
}
