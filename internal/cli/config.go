package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/seqdiag/pkg/cache"
)

// envPrefix marks environment variables that override config file values.
// SEQDIAG_CACHE_REDIS_URL sets redis_url in the [cache] table.
const envPrefix = "SEQDIAG_"

// Config is the seqdiag config file.
type Config struct {
	Render RenderConfig `toml:"render" mapstructure:"render"`
	Cache  cache.Config `toml:"cache" mapstructure:"cache"`
	Server ServerConfig `toml:"server" mapstructure:"server"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats        []string `toml:"formats" mapstructure:"formats"`
	IDPrefix       string   `toml:"id_prefix" mapstructure:"id_prefix"`
	Scale          float64  `toml:"scale" mapstructure:"scale"`
	XMLDeclaration bool     `toml:"xml_declaration" mapstructure:"xml_declaration"`
	TitleElement   bool     `toml:"title_element" mapstructure:"title_element"`
}

// ServerConfig holds settings for "seqdiag serve".
type ServerConfig struct {
	Addr         string `toml:"addr" mapstructure:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Metrics      bool   `toml:"metrics" mapstructure:"metrics"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:    ":8080",
			Metrics: true,
		},
	}
}

// configPath returns the default config file location using the XDG
// standard (~/.config/seqdiag/config.toml).
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location when
// path is empty, and applies environment overrides. A missing default file
// is not an error; a missing explicit one is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.Environ()); err != nil {
		return cfg, fmt.Errorf("config environment: %w", err)
	}
	return cfg, nil
}

// applyEnv decodes SEQDIAG_<TABLE>_<KEY>=value entries from env into cfg.
// Values are weakly typed, so "true", "1" and "8080" decode into bool and
// numeric fields, and comma-separated values into slices.
func applyEnv(cfg *Config, env []string) error {
	tables := map[string]map[string]any{}
	for _, kv := range env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}
		table, key, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "_")
		if !ok || key == "" {
			continue
		}
		if tables[table] == nil {
			tables[table] = map[string]any{}
		}
		tables[table][key] = value
	}
	if len(tables) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(tables)
}
