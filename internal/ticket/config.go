package ticket

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Root     string `json:"root"`
	Editor   string `json:"editor,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
	Color    string `json:"color,omitempty"`

	// RootAbs is the absolute storage root (computed, not serialized).
	RootAbs string `json:"-"`

	// Sources tracks where settings came from (for diagnostics).
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files and overrides were applied.
type ConfigSources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path to -c config if loaded, empty otherwise
	EnvRoot  bool   // TICKETS_ROOT was applied
	FlagRoot bool   // --root was applied
}

// Config field values.
var (
	LogLevels   = []string{"debug", "info", "warn", "error"}
	ColorModes  = []string{"auto", "always", "never"}
	defaultRoot = ".tickets"
)

// EnvRoot names the environment variable that overrides the root.
const EnvRoot = "TICKETS_ROOT"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Root:     defaultRoot,
		LogLevel: "warn",
		Color:    "auto",
	}
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/tickets/config.json if set, otherwise
// ~/.config/tickets/config.json. Returns "" if neither is known.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "tickets", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "tickets", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	ConfigPath   string            // -c/--config flag value
	RootOverride string            // --root flag value; empty means no override
	Env          map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/tickets/config.json or $XDG_CONFIG_HOME/tickets/config.json)
// 3. Explicit config file via ConfigPath (must exist)
// 4. TICKETS_ROOT
// 5. --root.
//
// A relative root from a config file or the defaults is resolved against
// $HOME; a relative root from the environment or the flag against the
// working directory.
func LoadConfig(input LoadConfigInput) (Config, error) {
	cfg := DefaultConfig()

	globalPath := getGlobalConfigPath(input.Env)
	if globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	if input.ConfigPath != "" {
		_, statErr := os.Stat(input.ConfigPath)
		if statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}

		explicitCfg, _, err := loadConfigFile(input.ConfigPath, true)
		if err != nil {
			return Config{}, err
		}

		cfg.Sources.Explicit = input.ConfigPath
		cfg = mergeConfig(cfg, explicitCfg)
	}

	var (
		root string
		err  error
	)

	switch envRoot := input.Env[EnvRoot]; {
	case input.RootOverride != "":
		root, err = filepath.Abs(input.RootOverride)
		if err != nil {
			return Config{}, fmt.Errorf("resolve --root: %w", err)
		}

		cfg.Root = input.RootOverride
		cfg.Sources.FlagRoot = true
	case envRoot != "":
		root, err = filepath.Abs(envRoot)
		if err != nil {
			return Config{}, fmt.Errorf("resolve %s: %w", EnvRoot, err)
		}

		cfg.Root = envRoot
		cfg.Sources.EnvRoot = true
	default:
		root, err = resolveRoot(cfg.Root, input.Env["HOME"])
		if err != nil {
			return Config{}, err
		}
	}

	cfg.RootAbs = root

	return cfg, nil
}

func resolveRoot(root, home string) (string, error) {
	if filepath.IsAbs(root) {
		return filepath.Clean(root), nil
	}

	if home == "" {
		return "", ErrHomeNotSet
	}

	return filepath.Join(home, root), nil
}

// loadConfigFile loads a config file. If mustExist is false, a missing file
// returns a zero config. Returns the config, whether the file was loaded,
// and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// An explicit "root": "" is an error, an absent root is not.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["root"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrRootEmpty
		}
	}

	if cfg.LogLevel != "" && !slices.Contains(LogLevels, cfg.LogLevel) {
		return Config{}, fmt.Errorf("log_level must be one of %v, got %q", LogLevels, cfg.LogLevel)
	}

	if cfg.Color != "" && !slices.Contains(ColorModes, cfg.Color) {
		return Config{}, fmt.Errorf("color must be one of %v, got %q", ColorModes, cfg.Color)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Root != "" {
		base.Root = overlay.Root
	}

	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.Color != "" {
		base.Color = overlay.Color
	}

	return base
}
