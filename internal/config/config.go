package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the complete configuration for a generation run.
type Config struct {
	// DirectivePrefix marks pair declarations in type doc comments.
	DirectivePrefix string `yaml:"directive_prefix" validate:"required,startswith=//"`
	// TagKey is the struct tag key of field-rename declarations.
	TagKey string `yaml:"tag_key" validate:"required"`
	// BuildTags are passed to the package loader.
	BuildTags []string `yaml:"build_tags"`
	// Strict turns dangling field rules into a fatal error.
	Strict      bool        `yaml:"strict"`
	NamingRules NamingRules `yaml:"naming"`
}

// NamingRules defines naming conventions for generated units.
// Every pattern is a fmt format with exactly one %s verb.
type NamingRules struct {
	MapperName      string `yaml:"mapper_name" validate:"required,pattern"`
	MapperPackage   string `yaml:"mapper_package" validate:"required,pattern,ne=%s"`
	RegistryName    string `yaml:"registry_name" validate:"required"`
	RegistryPackage string `yaml:"registry_package" validate:"required,pattern,ne=%s"`
	FileSuffix      string `yaml:"file_suffix" validate:"required,endswith=.go"`
}

// NewConfig creates a configuration populated with the default conventions.
func NewConfig() *Config {
	return &Config{
		DirectivePrefix: DefaultDirectivePrefix,
		TagKey:          DefaultTagKey,
		NamingRules: NamingRules{
			MapperName:      DefaultMapperNamePattern,
			MapperPackage:   DefaultMapperPackagePattern,
			RegistryName:    DefaultRegistryName,
			RegistryPackage: DefaultRegistryPackagePattern,
			FileSuffix:      DefaultFileSuffix,
		},
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its validation tags.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("pattern", validatePattern); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// validatePattern accepts strings holding exactly one %s verb and no other verbs.
func validatePattern(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.Count(s, "%s") == 1 && strings.Count(s, "%") == 1
}
