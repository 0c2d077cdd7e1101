// Package config loads lexnav.toml, the optional per-workspace
// configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/lexnav/lexnav/analysis"
)

// FileName is the configuration file looked up at the workspace root.
const FileName = "lexnav.toml"

// Config is a decoded lexnav.toml. The zero value carries no overrides;
// Default sets the documented defaults.
type Config struct {
	// LogLevel sets the stderr logging threshold.
	LogLevel string `toml:"log-level" validate:"omitempty,oneof=debug info warn error"`

	// IncludeBuiltins is forwarded to the resolution service.
	IncludeBuiltins bool `toml:"include-builtins"`

	// Extensions adds or overrides extension-to-language mappings, for
	// example ".pyi" = "python". Keys may omit the leading dot.
	Extensions map[string]string `toml:"extensions"`

	// Aliases registers extra language identifiers for existing
	// analyzers, for example "js" = "javascript".
	Aliases map[string]string `toml:"aliases"`
}

// Default returns the configuration an absent lexnav.toml implies.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Parse decodes and validates a lexnav.toml document. Absent fields
// keep their defaults.
func Parse(content string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(content, &cfg); err != nil {
		return cfg, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads and parses the file at path. A missing file is not an
// error: it yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadWorkspace reads root's lexnav.toml.
func LoadWorkspace(root string) (Config, error) {
	return Load(filepath.Join(root, FileName))
}

// LanguageFor maps a file path to a language identifier using the
// config's extension overrides on top of the built-in table. Returns ""
// when the extension is unknown.
func (c Config) LanguageFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for k, lang := range c.Extensions {
		if normalizeExt(k) == ext {
			return lang
		}
	}
	return analysis.DefaultExtensions()[ext]
}

// SlogLevel converts LogLevel to a slog.Level. Unset means info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ApplyAliases registers the config's language aliases on reg. Aliases
// naming an unknown language are ignored, matching Registry.Alias.
func (c Config) ApplyAliases(reg *analysis.Registry) {
	for alias, lang := range c.Aliases {
		reg.Alias(alias, lang)
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
