package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagLogLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file as well")
	flagBackup     = flag.Bool("backup", false, "Keep a backup copy of the input file")
	flagQuiet      = flag.Bool("quiet", false, "Only log errors")
	flagInitConfig = flag.Bool("init-config", false, "Write a default config file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// InitConfigRequested reports whether -init-config was given.
func InitConfigRequested() bool {
	return *flagInitConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagLogLevel != "" {
		cfg.Logging.Level = *flagLogLevel
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagBackup {
		cfg.Processing.Backup = true
	}
	if *flagQuiet {
		cfg.Logging.Level = "error"
	}
}
