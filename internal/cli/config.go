package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional folio.yaml workspace configuration. Flags
// given explicitly on the command line win over file values.
type FileConfig struct {
	DB      string `yaml:"db,omitempty"`
	Format  string `yaml:"format,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// defaultDBPath places the database under the user's home directory,
// falling back to the working directory when home is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "folio.db"
	}
	return filepath.Join(home, ".folio", "folio.db")
}

// applyFileConfig merges a --config file into unset options. A missing
// file is only an error when the user named it explicitly.
func applyFileConfig(opts *RootOptions) error {
	if opts.Config == "" {
		return nil
	}

	data, err := os.ReadFile(opts.Config)
	if err != nil {
		return fmt.Errorf("read config %s: %w", opts.Config, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", opts.Config, err)
	}

	if cfg.DB != "" && opts.DB == defaultDBPath() {
		opts.DB = cfg.DB
	}
	if cfg.Format != "" && opts.Format == "text" {
		if !isValidFormat(cfg.Format) {
			return fmt.Errorf("invalid format %q in %s", cfg.Format, opts.Config)
		}
		opts.Format = cfg.Format
	}
	if cfg.Verbose {
		opts.Verbose = true
	}
	return nil
}
