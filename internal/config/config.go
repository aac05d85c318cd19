// Package config handles tool configuration loading and management.
package config

import "github.com/Faultbox/live2d/pkg/core"

// Config holds all tool settings.
type Config struct {
	Core    CoreConfig    `yaml:"core"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// CoreConfig locates the native Cubism Core library.
type CoreConfig struct {
	// LibraryPath is the shared library to load. A bare name is resolved
	// through the platform's usual library search path.
	LibraryPath string `yaml:"library_path"`
	// ForwardLogs routes the engine's diagnostic callback into the logger.
	ForwardLogs bool `yaml:"forward_logs"`
}

// OutputConfig holds report formatting settings.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`
	// Verbose includes per-element detail in listings.
	Verbose bool `yaml:"verbose"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Core: CoreConfig{
			LibraryPath: core.DefaultLibName(),
			ForwardLogs: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Verbose: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
