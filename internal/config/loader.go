package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	envEndpoint = "NEXUCHAT_ENDPOINT"
	envModel    = "NEXUCHAT_MODEL"
)

// ConfigPath returns the default configuration file path: ~/.nexuchat/config.json.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// DataDir returns the nexuchat data directory: ~/.nexuchat.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nexuchat"
	}
	return filepath.Join(home, ".nexuchat")
}

// Load reads and parses the config file at path. The format follows the
// extension: .yaml/.yml, .toml, anything else is JSON.
// If path is empty, ConfigPath() is used.
// On parse failure it prints a warning and returns DefaultConfig().
// NEXUCHAT_ENDPOINT and NEXUCHAT_MODEL override the file in every case.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// no file yet, keep defaults
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := decode(path, data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config %s: %v\n", path, err)
			fmt.Fprintln(os.Stderr, "Using default configuration.")
			cfg = DefaultConfig()
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// Save writes cfg to path in the format implied by its extension.
// If path is empty, ConfigPath() is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := encode(path, cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch format(path) {
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	case "toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(path string, cfg *Config) ([]byte, error) {
	switch format(path) {
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		// Append a trailing newline for POSIX compliance.
		return append(data, '\n'), nil
	}
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(envModel); v != "" {
		cfg.Model = v
	}
}
