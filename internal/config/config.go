package config

import (
	"os"
	"strconv"
	"time"

	"trialsize/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `validate:"required"`
	Calculation CalculationConfig `validate:"required"`
	Log         LogConfig
	Data        DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	UIPort          string `validate:"required"`
	APIPort         string `validate:"required"`
	GinMode         string
	ShutdownTimeout time.Duration
}

// CalculationConfig holds engine settings
type CalculationConfig struct {
	// CriticalValues is "fixed" (1.96/0.84 regardless of alpha and power) or
	// "derived" (normal quantiles of the alpha and power inputs)
	CriticalValues string `validate:"oneof=fixed derived"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// DataConfig holds scenario input settings
type DataConfig struct {
	ScenarioFile string
}

// Critical value modes
const (
	CriticalValuesFixed   = "fixed"
	CriticalValuesDerived = "derived"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:      *loadServerConfig(),
		Calculation: *loadCalculationConfig(),
		Log:         *loadLogConfig(),
		Data:        *loadDataConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			UIPort:          "8080",
			APIPort:         "8081",
			GinMode:         "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Calculation: CalculationConfig{CriticalValues: CriticalValuesFixed},
		Log:         LogConfig{Level: "INFO"},
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		UIPort:          getEnvOrDefault("UI_PORT", "8080"),
		APIPort:         getEnvOrDefault("API_PORT", "8081"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadCalculationConfig() *CalculationConfig {
	return &CalculationConfig{
		CriticalValues: getEnvOrDefault("CRITICAL_VALUES", CriticalValuesFixed),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		ScenarioFile: getEnvOrDefault("SCENARIO_FILE", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Server.UIPort == "" {
		return errors.ConfigInvalid("UI port is required")
	}
	if config.Server.APIPort == "" {
		return errors.ConfigInvalid("API port is required")
	}
	if _, err := strconv.Atoi(config.Server.UIPort); err != nil {
		return errors.ConfigInvalid("UI_PORT must be numeric")
	}
	if _, err := strconv.Atoi(config.Server.APIPort); err != nil {
		return errors.ConfigInvalid("API_PORT must be numeric")
	}
	switch config.Calculation.CriticalValues {
	case CriticalValuesFixed, CriticalValuesDerived:
	default:
		return errors.ConfigInvalid("CRITICAL_VALUES must be fixed or derived")
	}
	if config.Server.ShutdownTimeout <= 0 {
		return errors.ConfigInvalid("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
