package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/digest-dev/digestctl/internal/notepath"
	"github.com/digest-dev/digestctl/internal/parse"
)

// Config holds the application configuration.
type Config struct {
	// ProjectsRoot is the directory whose immediate subdirectories are
	// scanned for source logs.
	ProjectsRoot string `mapstructure:"projects_root"`

	// VaultPath is the root of the Obsidian vault daily notes are
	// written into.
	VaultPath string `mapstructure:"vault_path"`

	// DailyNoteFormat is the date-field template resolved against the
	// vault path; see the notepath package for recognized fields.
	DailyNoteFormat string `mapstructure:"daily_note_format"`

	// SourceFilename is the log filename expected in each project
	// subdirectory.
	SourceFilename string `mapstructure:"source_filename"`

	// SectionHeadings are the accepted accomplishment section headings.
	SectionHeadings []string `mapstructure:"section_headings"`

	// DataDir holds digestctl's own state (the run-history ledger).
	DataDir string `mapstructure:"data_dir"`

	// History toggles run-history recording.
	History bool `mapstructure:"history"`
}

// DefaultDataDir returns the default data directory (~/.digestctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".digestctl")
	}
	return filepath.Join(home, ".digestctl")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("projects_root", "")
	v.SetDefault("vault_path", "")
	v.SetDefault("daily_note_format", notepath.DefaultFormat)
	v.SetDefault("source_filename", "CLAUDE.md")
	v.SetDefault("section_headings", parse.DefaultHeadings)
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("history", true)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "digestctl"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DIGESTCTL_VAULT_PATH, DIGESTCTL_PROJECTS_ROOT, etc.
	v.SetEnvPrefix("DIGESTCTL")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
