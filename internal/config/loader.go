package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v:         viper.New(),
		envPrefix: "REQQA",
	}
}

// NewLoaderWithViper creates a loader using an existing viper instance so
// CLI flag bindings take effect.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: "REQQA",
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (REQQA_*)
// 3. Project config (.reqqa.yaml in current directory)
// 4. User config (~/.config/reqqa/config.yaml)
// 5. Defaults
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName(".reqqa")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", "reqqa"))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")

	l.v.SetDefault("server.host", "localhost")
	l.v.SetDefault("server.port", 8080)
	l.v.SetDefault("server.cors", true)

	l.v.SetDefault("model.provider", "gemini")
	l.v.SetDefault("model.name", "gemini-2.5-flash")
	l.v.SetDefault("model.api_key", "")
	l.v.SetDefault("model.timeout", "60s")
	l.v.SetDefault("model.max_retries", 3)

	l.v.SetDefault("store.path", "requirements.db")

	l.v.SetDefault("analysis.mode", "context")
	l.v.SetDefault("analysis.calibrate", true)
	l.v.SetDefault("analysis.max_suggestions", 3)
	l.v.SetDefault("analysis.concurrency", 2)
}
