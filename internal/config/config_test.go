package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escala/pkg/core/model"
)

func intPtr(n int) *int { return &n }

func validConfig() *Config {
	cfg := &Config{
		Storage:     StorageConfig{Backend: "sqlite", Path: "escala.sqlite"},
		ServiceRule: "FREQ=WEEKLY;BYDAY=SA",
		Advisor:     AdvisorConfig{Provider: "gemini", Model: "gemini-2.5-flash", MinVolunteers: intPtr(3)},
	}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	err := Validate(validConfig())
	assert.NoError(t, err)
}

func TestValidate_Default(t *testing.T) {
	cfg := Default()

	require.NoError(t, Validate(cfg))
	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Equal(t, DefaultBoltPath, cfg.Storage.Path)
	assert.Equal(t, "greedy", cfg.Advisor.Provider)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Advisor.APIKeyEnv)
	require.NotNil(t, cfg.Advisor.MinVolunteers)
	assert.Equal(t, 5, *cfg.Advisor.MinVolunteers)
	assert.Equal(t, "logs", cfg.LogsDir)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		errContains string
	}{
		{
			name:        "unknown backend",
			mutate:      func(cfg *Config) { cfg.Storage.Backend = "redis" },
			errContains: "validation failed",
		},
		{
			name: "postgres without dsn",
			mutate: func(cfg *Config) {
				cfg.Storage.Backend = "postgres"
				cfg.Storage.DSN = ""
			},
			errContains: "validation failed",
		},
		{
			name:        "unknown provider",
			mutate:      func(cfg *Config) { cfg.Advisor.Provider = "oracle" },
			errContains: "validation failed",
		},
		{
			name:        "negative min volunteers",
			mutate:      func(cfg *Config) { cfg.Advisor.MinVolunteers = intPtr(-1) },
			errContains: "validation failed",
		},
		{
			name:        "invalid rrule",
			mutate:      func(cfg *Config) { cfg.ServiceRule = "INVALID_RRULE_SYNTAX" },
			errContains: "invalid rrule",
		},
		{
			name:        "fortnightly rule",
			mutate:      func(cfg *Config) { cfg.ServiceRule = "FREQ=WEEKLY;INTERVAL=2;BYDAY=SA" },
			errContains: "INTERVAL is not supported",
		},
		{
			name:        "monthly rule",
			mutate:      func(cfg *Config) { cfg.ServiceRule = "FREQ=MONTHLY;BYDAY=1SA" },
			errContains: "FREQ must be WEEKLY",
		},
		{
			name: "room without name",
			mutate: func(cfg *Config) {
				cfg.Rooms = []model.Room{{ID: "checkin", Capacity: 1}}
			},
			errContains: "validation failed",
		},
		{
			name: "room with zero capacity",
			mutate: func(cfg *Config) {
				cfg.Rooms = []model.Room{{ID: "checkin", Name: "Check-in", Capacity: 0}}
			},
			errContains: "validation failed",
		},
		{
			name: "duplicate room ids",
			mutate: func(cfg *Config) {
				cfg.Rooms = []model.Room{
					{ID: "checkin", Name: "Check-in", Capacity: 1},
					{ID: "checkin", Name: "Check-in 2", Capacity: 1},
				}
			},
			errContains: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_PostgresWithDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Storage = StorageConfig{Backend: "postgres", DSN: "postgres://localhost/escala"}

	assert.NoError(t, Validate(cfg))
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
storage:
  backend: sqlite
  path: "/var/lib/escala/escala.sqlite"
serviceRule: "FREQ=WEEKLY;BYDAY=SA"
rooms:
  - id: checkin
    name: Check-in
    capacity: 1
  - id: bercario
    name: Berçário
    description: 0 to 2 years
    capacity: 3
advisor:
  provider: gemini
  model: gemini-2.5-flash
  apiKeyEnv: ESCALA_GEMINI_KEY
  minVolunteers: 0
logsDir: /tmp/escala-logs
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/escala/escala.sqlite", cfg.Storage.Path)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA", cfg.ServiceRule)

	require.Len(t, cfg.Rooms, 2)
	assert.Equal(t, "bercario", cfg.Rooms[1].ID)
	assert.Equal(t, "0 to 2 years", cfg.Rooms[1].Description)
	assert.Equal(t, 3, cfg.Rooms[1].Capacity)

	assert.Equal(t, "gemini", cfg.Advisor.Provider)
	assert.Equal(t, "ESCALA_GEMINI_KEY", cfg.Advisor.APIKeyEnv)
	require.NotNil(t, cfg.Advisor.MinVolunteers)
	assert.Equal(t, 0, *cfg.Advisor.MinVolunteers, "explicit zero is kept")
	assert.Equal(t, "/tmp/escala-logs", cfg.LogsDir)
}

func TestLoadFromPath_MinimalConfigGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte("storage:\n  backend: memory\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "greedy", cfg.Advisor.Provider)
	assert.Equal(t, 5, *cfg.Advisor.MinVolunteers)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte("serviceRule: \"NOT_A_RULE\"\n"), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte("storage: [unclosed\n"), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadSecrets(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envPath, []byte("ESCALA_TEST_KEY=secret-value\n"), 0600)
	require.NoError(t, err)
	t.Setenv("ESCALA_TEST_KEY", "")
	os.Unsetenv("ESCALA_TEST_KEY")

	require.NoError(t, LoadSecrets(envPath))
	assert.Equal(t, "secret-value", AdvisorConfig{APIKeyEnv: "ESCALA_TEST_KEY"}.APIKey())
}

func TestLoadSecrets_MissingFileIsFine(t *testing.T) {
	assert.NoError(t, LoadSecrets(filepath.Join(t.TempDir(), ".env")))
}
