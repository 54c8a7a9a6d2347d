package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names inside the config directory.
const (
	RCFile     = "markshot.rc"
	RecordFile = "config.config"
	devRCFile  = ".markshotrc"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Dir returns the per-user config directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "markshot")
}

// Load attempts to load the rc settings. A missing file yields defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the rc file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, devRCFile)
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	p := filepath.Join(Dir(), RCFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// SavePath is where Save writes the rc file.
func (l *Loader) SavePath() string {
	if p := l.GetConfigPath(); p != "" {
		return p
	}
	return filepath.Join(Dir(), RCFile)
}

// Save writes cfg to the rc file.
func (l *Loader) Save(cfg *Config) error {
	return writeFile(l.SavePath(), cfg.String())
}

// RecordPath returns where the save record lives. In dev mode a
// config.config in the working directory wins.
func (l *Loader) RecordPath() string {
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, RecordFile)
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}
	return filepath.Join(Dir(), RecordFile)
}

// LoadRecord reads the save record. It always returns a usable record; the
// error describes why defaults were substituted.
func (l *Loader) LoadRecord() (Record, error) {
	f, err := os.Open(l.RecordPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRecord(), nil
		}
		return DefaultRecord(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()
	return ParseRecord(f)
}

// SaveRecord writes rec to the record file.
func (l *Loader) SaveRecord(rec Record) error {
	var sb strings.Builder
	rec.WriteTo(&sb)
	return writeFile(l.RecordPath(), sb.String())
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
