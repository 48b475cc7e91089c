package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Game identifiers doubling as config file stems.
const (
	HockeyID   = "hockey"
	BombPassID = "bombpass"
)

var extensions = []string{".yaml", ".yml", ".toml"}

type validator interface {
	Validate() error
}

// LoadHockey loads air hockey configuration.
// Search order: customPath -> ~/.arcade/configs/hockey.{yaml,yml,toml} ->
// ./configs/hockey.{yaml,yml,toml} -> embedded default
func LoadHockey(customPath string) (HockeyConfig, error) {
	return load(HockeyID, customPath, func() HockeyConfig {
		cfg := DefaultHockeyConfig()
		if err := yaml.Unmarshal(defaultHockeyYAML, &cfg); err != nil {
			return DefaultHockeyConfig() // Fallback to hardcoded if embed fails
		}
		return cfg
	})
}

// LoadBombPass loads Bomb Pass configuration with the same search order.
func LoadBombPass(customPath string) (BombPassConfig, error) {
	return load(BombPassID, customPath, func() BombPassConfig {
		cfg := DefaultBombPassConfig()
		if err := yaml.Unmarshal(defaultBombPassYAML, &cfg); err != nil {
			return DefaultBombPassConfig()
		}
		return cfg
	})
}

// load overlays the first readable file onto the embedded defaults.
// A broken custom path is an error; broken files found by searching are skipped.
func load[T validator](id, customPath string, base func() T) (T, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath, base())
		if err != nil {
			return base(), err
		}
		return cfg, nil
	}

	for _, path := range searchPaths(id) {
		if cfg, err := loadFile(path, base()); err == nil {
			return cfg, nil
		}
	}

	return base(), nil
}

func loadFile[T validator](path string, cfg T) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// decode picks the parser from the file extension.
func decode(path string, data []byte, dst any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, dst)
	case ".toml":
		_, err := toml.Decode(string(data), dst)
		return err
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// searchPaths lists candidate files for a game, user directory first.
func searchPaths(id string) []string {
	var dirs []string
	if dir := userConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "configs")

	paths := make([]string, 0, len(dirs)*len(extensions))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, id+ext))
		}
	}
	return paths
}

// userConfigDir returns ~/.arcade/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}
