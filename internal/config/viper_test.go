package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "fixtures", config.Data.Source)
	assert.Equal(t, 2025, config.Data.DefaultYear)
	assert.Equal(t, 3, config.Analysis.TrendMonths)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
	assert.Equal(t, 30, config.AI.TimeoutSeconds)
	assert.Equal(t, "", config.Samples.File)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"CFO_LOG_LEVEL":             "debug",
		"CFO_LOG_FORMAT":            "json",
		"CFO_DATA_SOURCE":           "/var/finance/exports",
		"CFO_DATA_DEFAULT_YEAR":     "2024",
		"CFO_ANALYSIS_TREND_MONTHS": "6",
		"CFO_AI_ENABLED":            "true",
		"CFO_AI_MODEL":              "gemini-1.5-pro",
		"CFO_AI_TIMEOUT_SECONDS":    "45",
		"GEMINI_API_KEY":            "test-api-key",
	}

	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/var/finance/exports", config.Data.Source)
	assert.Equal(t, 2024, config.Data.DefaultYear)
	assert.Equal(t, 6, config.Analysis.TrendMonths)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, 45, config.AI.TimeoutSeconds)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
data:
  source: "seed"
  default_year: 2024
analysis:
  trend_months: 6
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Change to temp directory so config file is found
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		err := os.Chdir(originalDir)
		require.NoError(t, err)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "seed", config.Data.Source)
	assert.Equal(t, 2024, config.Data.DefaultYear)
	assert.Equal(t, 6, config.Analysis.TrendMonths)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
data:
  source: "seed"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Environment variables should override config file values
	t.Setenv("CFO_LOG_LEVEL", "error")
	t.Setenv("CFO_ANALYSIS_TREND_MONTHS", "12")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		err := os.Chdir(originalDir)
		require.NoError(t, err)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)      // env var wins
	assert.Equal(t, "seed", config.Data.Source)     // config file value
	assert.Equal(t, 12, config.Analysis.TrendMonths) // env var wins
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name: "invalid log level",
			modifyConfig: func(c *Config) {
				c.Log.Level = "invalid"
			},
			expectError: "invalid log level",
		},
		{
			name: "invalid log format",
			modifyConfig: func(c *Config) {
				c.Log.Format = "invalid"
			},
			expectError: "invalid log format",
		},
		{
			name: "empty data source",
			modifyConfig: func(c *Config) {
				c.Data.Source = ""
			},
			expectError: "data.source must not be empty",
		},
		{
			name: "default year too small",
			modifyConfig: func(c *Config) {
				c.Data.DefaultYear = 1999
			},
			expectError: "data.default_year must be between 2000 and 2099",
		},
		{
			name: "trend months too small",
			modifyConfig: func(c *Config) {
				c.Analysis.TrendMonths = 0
			},
			expectError: "analysis.trend_months must be between 1 and 24",
		},
		{
			name: "AI enabled without API key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name: "invalid timeout seconds",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.TimeoutSeconds = 0
			},
			expectError: "ai.timeout_seconds must be between 1 and 300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnvVars(t)

			config, err := InitializeConfig()
			require.NoError(t, err)

			tt.modifyConfig(config)
			err = validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CFO_TEST_PRESENT", "value")

	assert.Equal(t, "value", GetEnv("CFO_TEST_PRESENT", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CFO_TEST_ABSENT", "fallback"))
}

// Helper function to clear test environment variables
func clearTestEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"CFO_LOG_LEVEL",
		"CFO_LOG_FORMAT",
		"CFO_DATA_SOURCE",
		"CFO_DATA_DEFAULT_YEAR",
		"CFO_ANALYSIS_TREND_MONTHS",
		"CFO_AI_ENABLED",
		"CFO_AI_MODEL",
		"CFO_AI_TIMEOUT_SECONDS",
		"CFO_SAMPLES_FILE",
		"GEMINI_API_KEY",
	}

	for _, envVar := range envVars {
		if err := os.Unsetenv(envVar); err != nil {
			t.Logf("failed to unset environment variable %s: %v", envVar, err)
		}
	}
}
