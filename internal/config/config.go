package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Data    DataConfig    `toml:"data"`
	Logging LoggingConfig `toml:"logging"`
}

type DataConfig struct {
	Dir            string `toml:"dir" env:"ANKILEVELING_DATA_DIR"`
	ClassesFile    string `toml:"classes_file"`
	MonstersFile   string `toml:"monsters_file"`
	CharactersFile string `toml:"characters_file"`
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"ANKILEVELING_LOG_LEVEL"`
	Format string `toml:"format" env:"ANKILEVELING_LOG_FORMAT"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ClassesPath is the classes table file inside the data dir.
func (c DataConfig) ClassesPath() string { return c.resolve(c.ClassesFile) }

// MonstersPath is the bestiary file inside the data dir.
func (c DataConfig) MonstersPath() string { return c.resolve(c.MonstersFile) }

// CharactersPath is the character roster file inside the data dir.
func (c DataConfig) CharactersPath() string { return c.resolve(c.CharactersFile) }

// resolve leaves absolute file names alone.
func (c DataConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

func defaults() *Config {
	return &Config{
		Data: DataConfig{
			Dir:            "data",
			ClassesFile:    "classes.json",
			MonstersFile:   "monsters.json",
			CharactersFile: "characters.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
