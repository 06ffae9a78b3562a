package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the interface that all service configs must implement.
type Config interface {
	Validate() error
}

// Manager handles configuration loading and parsing.
type Manager struct {
	k           *koanf.Koanf
	envPrefix   string
	configPaths []string
}

// NewManager creates a new configuration manager. Environment variables are
// read with the upper-cased prefix, e.g. CATALOG_DATABASE_MAX_OPEN_CONNS for
// database.max_open_conns.
func NewManager(prefix string) *Manager {
	return &Manager{
		k:           koanf.New("."),
		envPrefix:   strings.ToUpper(prefix) + "_",
		configPaths: defaultConfigPaths(prefix),
	}
}

// WithPaths replaces the config file search list.
func (m *Manager) WithPaths(paths ...string) *Manager {
	m.configPaths = paths
	return m
}

// LoadConfig loads configuration from all sources. The struct passed in
// carries the defaults; files and then environment override them.
func (m *Manager) LoadConfig(cfg Config) error {
	if err := m.k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	for _, path := range m.configPaths {
		if err := m.loadFromFile(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	if err := m.k.Load(env.Provider(m.envPrefix, ".", m.envKey), nil); err != nil {
		return fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := m.k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// envKey maps CATALOG_RABBITMQ_RESULT_QUEUE to rabbitmq.result_queue. Only
// the first segment is a section, so keys may contain underscores.
func (m *Manager) envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, m.envPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

func (m *Manager) loadFromFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return m.k.Load(file.Provider(path), parser)
}

// defaultConfigPaths lists candidate files in load order. Later files
// override earlier ones, so CONFIG_PATH comes last.
func defaultConfigPaths(name string) []string {
	paths := []string{
		"config.yaml",
		"config.json",
		fmt.Sprintf("configs/%s.yaml", name),
		fmt.Sprintf("configs/%s.json", name),
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		paths = append(paths, configPath)
	}

	return paths
}
