// Package config loads book configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxSubtitleLength = 200
	MaxAuthorLength   = 100
	MaxBaseNameLength = 100
	MaxFontLength     = 100
)

// Config holds all configuration for book generation.
type Config struct {
	Book     BookConfig `yaml:"book"`
	Fonts    FontConfig `yaml:"fonts"`
	Chapters []string   `yaml:"chapters"`
}

// BookConfig defines publication metadata.
type BookConfig struct {
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle"`
	Author     string `yaml:"author"`
	BaseName   string `yaml:"baseName"`   // output filename stem, e.g. "laravel-book"
	CoverImage string `yaml:"coverImage"` // optional EPUB cover image filename
}

// FontConfig defines typesetting fonts for the pandoc path.
type FontConfig struct {
	Main string `yaml:"main"`
	Mono string `yaml:"mono"`
	Size string `yaml:"size"` // e.g. "11pt"
}

// Default returns the built-in configuration: the fifteen expected
// chapters and the standard book metadata.
func Default() *Config {
	return &Config{
		Book: BookConfig{
			Title:      "Laravel: From Zero to Production",
			Subtitle:   "A comprehensive guide to building modern web applications with Laravel",
			Author:     "Laravel Book Team",
			BaseName:   "laravel-book",
			CoverImage: "cover.png",
		},
		Fonts: FontConfig{
			Main: "Segoe UI",
			Mono: "Courier New",
			Size: "11pt",
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
// Fields left empty in the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field lengths and structural constraints.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"book.title", c.Book.Title, MaxTitleLength},
		{"book.subtitle", c.Book.Subtitle, MaxSubtitleLength},
		{"book.author", c.Book.Author, MaxAuthorLength},
		{"book.baseName", c.Book.BaseName, MaxBaseNameLength},
		{"fonts.main", c.Fonts.Main, MaxFontLength},
		{"fonts.mono", c.Fonts.Mono, MaxFontLength},
	}
	for _, ch := range checks {
		if len(ch.value) > ch.max {
			return fmt.Errorf("%w: %s (%d > %d)", ErrFieldTooLong, ch.name, len(ch.value), ch.max)
		}
	}
	return nil
}
