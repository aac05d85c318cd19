package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagLib     = flag.String("lib", "", "Path to the Cubism Core shared library")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Write logs to this file")
	flagJSON    = flag.Bool("json", false, "Emit reports as JSON")
	flagVerbose = flag.Bool("verbose", false, "Include per-element detail in listings")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagLib != "" {
		cfg.Core.LibraryPath = *flagLib
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagJSON {
		cfg.Output.Format = "json"
	}
	if *flagVerbose {
		cfg.Output.Verbose = true
	}
}
