// Package config loads the bot's YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the file paths and behavior switches the bot needs.
type Config struct {
	// DictionaryPath is the JSON dictionary file.
	DictionaryPath string `yaml:"dictionary"`

	// NotifyPath is the reboot-notification sidecar file.
	NotifyPath string `yaml:"notify_sidecar"`

	// JournalPath is the SQLite command journal.
	JournalPath string `yaml:"journal"`

	// Locale is the BCP 47 tag used for dictionary collation.
	Locale string `yaml:"locale"`

	// StrictLoad makes a missing or malformed dictionary file a startup
	// failure instead of degrading to an empty store.
	StrictLoad bool `yaml:"strict_load"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DictionaryPath: "dictionary.json",
		NotifyPath:     "notify.json",
		JournalPath:    "journal.db",
		Locale:         "en",
	}
}

// Load reads the YAML file at path and fills absent fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		// An empty file is all-defaults, not an error.
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that can be wrong rather than just absent.
func (c Config) Validate() error {
	if c.DictionaryPath == "" {
		return fmt.Errorf("dictionary path is required")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return nil
}

// LocaleTag parses the configured locale. Validate has already checked
// it, so a parse failure here is a programming error.
func (c Config) LocaleTag() language.Tag {
	return language.MustParse(c.Locale)
}
