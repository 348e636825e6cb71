// Package config handles tool configuration loading and management.
package config

// Config holds all meshnormals settings.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Processing ProcessingConfig `yaml:"processing"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ProcessingConfig holds mesh processing settings.
type ProcessingConfig struct {
	Backup       bool   `yaml:"backup"`        // Keep a copy of the input before rewriting
	BackupSuffix string `yaml:"backup_suffix"` // Suffix appended to backup copies
	Indent       string `yaml:"indent"`        // Indentation unit for written XML
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Processing: ProcessingConfig{
			Backup:       false,
			BackupSuffix: ".bak",
			Indent:       "    ",
		},
	}
}
