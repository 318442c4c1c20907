package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg, err := NewLoader().Load()
	if err != nil {
		panic(err)
	}
	cfg.Model.APIKey = "test-key"
	return cfg
}

func TestLoaderDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.CORS)
	assert.Equal(t, "gemini", cfg.Model.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model.Name)
	assert.Equal(t, "60s", cfg.Model.Timeout)
	assert.Equal(t, 3, cfg.Model.MaxRetries)
	assert.Equal(t, "requirements.db", cfg.Store.Path)
	assert.Equal(t, "context", cfg.Analysis.Mode)
	assert.True(t, cfg.Analysis.Calibrate)
	assert.Equal(t, 3, cfg.Analysis.MaxSuggestions)
	assert.Equal(t, 2, cfg.Analysis.Concurrency)
}

func TestLoaderEnvOverrides(t *testing.T) {
	t.Setenv("REQQA_MODEL_API_KEY", "from-env")
	t.Setenv("REQQA_SERVER_PORT", "9090")
	t.Setenv("REQQA_ANALYSIS_MODE", "project")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Model.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "project", cfg.Analysis.Mode)
}

func TestLoaderConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
model:
  provider: static
analysis:
  calibrate: false
  concurrency: 8
`), 0o600))

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "static", cfg.Model.Provider)
	assert.False(t, cfg.Analysis.Calibrate)
	assert.Equal(t, 8, cfg.Analysis.Concurrency)
	// Untouched keys keep their defaults.
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoaderMissingExplicitFile(t *testing.T) {
	_, err := NewLoader().WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.Error(t, err)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiresGeminiKey(t *testing.T) {
	cfg := validConfig()
	cfg.Model.APIKey = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model.api_key")
	assert.Contains(t, err.Error(), "REQQA_MODEL_API_KEY")
}

func TestValidateStaticProviderNeedsNoKey(t *testing.T) {
	cfg := validConfig()
	cfg.Model.Provider = "static"
	cfg.Model.APIKey = ""

	require.NoError(t, cfg.Validate())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Server.Port = 0
	cfg.Model.Provider = "oracle"
	cfg.Model.Timeout = "soon"
	cfg.Model.MaxRetries = 0
	cfg.Store.Path = ""
	cfg.Analysis.Mode = "vibes"
	cfg.Analysis.MaxSuggestions = 0
	cfg.Analysis.Concurrency = 0

	err := cfg.Validate()
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 10)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "analysis.concurrency")
}

func TestModelTimeout(t *testing.T) {
	cfg := validConfig()

	cfg.Model.Timeout = "2m"
	assert.Equal(t, 2*time.Minute, cfg.ModelTimeout())

	cfg.Model.Timeout = "not a duration"
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout())

	cfg.Model.Timeout = "-5s"
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout())
}
