// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all phonebook configuration.
type Config struct {
	Store   Store   `yaml:"store"`
	Log     Log     `yaml:"log"`
	Display Display `yaml:"display"`
}

// Store holds contact file settings.
type Store struct {
	Path string `yaml:"path" validate:"required"`
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"` // Empty disables logging.
}

// Display holds terminal output settings.
type Display struct {
	Color string `yaml:"color" validate:"oneof=auto always never"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Path: "contacts.csv",
		},
		Log: Log{
			Level: "info",
		},
		Display: Display{
			Color: "auto",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// validate is shared; validator.Validate caches struct metadata and is safe for reuse.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML key so messages match the config file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("config: %w", err)
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("config: %s cannot be empty", field)
	case "oneof":
		return fmt.Errorf("config: %s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("config: %s failed %q validation", field, fe.Tag())
	}
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: PHONEBOOK_DATA, PHONEBOOK_LOG_LEVEL, PHONEBOOK_LOG_FILE, PHONEBOOK_COLOR.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PHONEBOOK_DATA"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("PHONEBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PHONEBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("PHONEBOOK_COLOR"); v != "" {
		c.Display.Color = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store   *rawStore   `yaml:"store"`
	Log     *rawLog     `yaml:"log"`
	Display *rawDisplay `yaml:"display"`
}

type rawStore struct {
	Path *string `yaml:"path"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type rawDisplay struct {
	Color *string `yaml:"color"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil && layer.Store.Path != nil {
		c.Store.Path = *layer.Store.Path
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
	if layer.Display != nil && layer.Display.Color != nil {
		c.Display.Color = *layer.Display.Color
	}
}
