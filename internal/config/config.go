// Package config handles tool configuration loading and management.
package config

// Config holds all guide placement tool settings.
type Config struct {
	Recording RecordingConfig `yaml:"recording"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RecordingConfig holds placement recording settings.
type RecordingConfig struct {
	// SampleCount is the number of surface vertices recorded per guide.
	SampleCount int `yaml:"sample_count"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Recording: RecordingConfig{
			SampleCount: 32,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
