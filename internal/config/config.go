package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/schedule"
)

const (
	configFileName = "escala_config.yaml"

	DefaultBackend       = "bolt"
	DefaultBoltPath      = "data/escala.db"
	DefaultSQLitePath    = "data/escala.sqlite"
	DefaultProvider      = "greedy"
	DefaultAPIKeyEnv     = "GEMINI_API_KEY"
	DefaultMinVolunteers = 5
	DefaultLogsDir       = "logs"
)

// StorageConfig selects where state is persisted
type StorageConfig struct {
	Backend string `yaml:"backend" validate:"oneof=bolt sqlite postgres memory"`
	Path    string `yaml:"path,omitempty"`
	DSN     string `yaml:"dsn,omitempty" validate:"required_if=Backend postgres"`
}

// AdvisorConfig selects the auto-fill advisor
type AdvisorConfig struct {
	Provider      string `yaml:"provider" validate:"oneof=gemini greedy none"`
	Model         string `yaml:"model,omitempty"`
	APIKeyEnv     string `yaml:"apiKeyEnv,omitempty"`
	MinVolunteers *int   `yaml:"minVolunteers,omitempty" validate:"omitempty,min=0"`
}

// APIKey reads the advisor API key from the configured environment variable
func (a AdvisorConfig) APIKey() string {
	return os.Getenv(a.APIKeyEnv)
}

// Config represents the application configuration
type Config struct {
	Storage     StorageConfig `yaml:"storage"`
	ServiceRule string        `yaml:"serviceRule,omitempty"`
	Rooms       []model.Room  `yaml:"rooms,omitempty" validate:"omitempty,unique=ID,dive"`
	Advisor     AdvisorConfig `yaml:"advisor"`
	LogsDir     string        `yaml:"logsDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from escala_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile(configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv prefers escala_config.<env>.yaml and falls back to escala_config.yaml
func LoadWithEnv(env string) (*Config, error) {
	if env != "" {
		envPath, err := findConfigFile(fmt.Sprintf("escala_config.%s.yaml", env))
		if err == nil {
			return LoadFromPath(envPath)
		}
	}
	return Load()
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills in unset optional fields
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultBackend
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case "bolt":
			cfg.Storage.Path = DefaultBoltPath
		case "sqlite":
			cfg.Storage.Path = DefaultSQLitePath
		}
	}
	if cfg.Advisor.Provider == "" {
		cfg.Advisor.Provider = DefaultProvider
	}
	if cfg.Advisor.APIKeyEnv == "" {
		cfg.Advisor.APIKeyEnv = DefaultAPIKeyEnv
	}
	if cfg.Advisor.MinVolunteers == nil {
		n := DefaultMinVolunteers
		cfg.Advisor.MinVolunteers = &n
	}
	if cfg.LogsDir == "" {
		cfg.LogsDir = DefaultLogsDir
	}
}

// Validate validates the configuration struct and checks the service rule
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.ServiceRule != "" {
		if err := schedule.ValidateServiceRule(cfg.ServiceRule); err != nil {
			return fmt.Errorf("invalid rrule in serviceRule: %w", err)
		}
	}

	return nil
}

// LoadSecrets reads KEY=value pairs from a dotenv file into the process
// environment. A missing file is not an error.
func LoadSecrets(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for name in current directory and home directory
func findConfigFile(name string) (string, error) {
	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
