// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Store    StoreConfig    `mapstructure:"store"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	CORS bool   `mapstructure:"cors"`
}

// ModelConfig configures the text-generation service. The API key is read
// here once at startup and injected into the client constructor; business
// logic never touches the environment.
type ModelConfig struct {
	Provider   string `mapstructure:"provider"`
	Name       string `mapstructure:"name"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    string `mapstructure:"timeout"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// StoreConfig configures result persistence.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// AnalysisConfig configures the orchestration policy.
type AnalysisConfig struct {
	// Mode is "context" (free-form context) or "project" (mandatory project
	// description with dual refinement options).
	Mode string `mapstructure:"mode"`
	// Calibrate toggles red-flag score calibration; when false the raw
	// self-reported percentages are averaged.
	Calibrate      bool `mapstructure:"calibrate"`
	MaxSuggestions int  `mapstructure:"max_suggestions"`
	// Concurrency bounds parallel requirement analyses in dataset runs.
	Concurrency int `mapstructure:"concurrency"`
}
