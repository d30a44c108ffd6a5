package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors ConfigStruct with optional fields so a TOML file only
// overrides the keys it sets.
type fileConfig struct {
	Genius struct {
		Token                *string  `toml:"token"`
		TimeoutSeconds       *int     `toml:"timeout_seconds"`
		Retries              *int     `toml:"retries"`
		RemoveSectionHeaders *bool    `toml:"remove_section_headers"`
		SkipNonSongs         *bool    `toml:"skip_non_songs"`
		ExcludedTerms        []string `toml:"excluded_terms"`
		MaxPerPage           *int     `toml:"max_per_page"`
		LenientStartup       *bool    `toml:"lenient_startup"`
	} `toml:"genius"`
	Server struct {
		Transport *string `toml:"transport"`
		Port      *string `toml:"port"`
	} `toml:"server"`
	Logging struct {
		Level   *string `toml:"level"`
		File    *string `toml:"file"`
		DevMode *bool   `toml:"dev_mode"`
	} `toml:"logging"`
	Sentry struct {
		DSN     *string `toml:"dsn"`
		Release *string `toml:"release"`
	} `toml:"sentry"`
}

// LoadFile overlays the TOML file at path onto c. Values are clamped the same
// way the environment helpers clamp them.
func (c *ConfigStruct) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.apply(&fc)
	return nil
}

func (c *ConfigStruct) apply(fc *fileConfig) {
	g := fc.Genius
	if g.Token != nil {
		c.Genius.Token = strings.TrimSpace(*g.Token)
	}
	if g.TimeoutSeconds != nil && *g.TimeoutSeconds > 0 {
		c.Genius.TimeoutSeconds = min(*g.TimeoutSeconds, 120)
	}
	if g.Retries != nil && *g.Retries >= 0 {
		c.Genius.Retries = min(*g.Retries, 10)
	}
	if g.RemoveSectionHeaders != nil {
		c.Genius.RemoveSectionHeaders = *g.RemoveSectionHeaders
	}
	if g.SkipNonSongs != nil {
		c.Genius.SkipNonSongs = *g.SkipNonSongs
	}
	if g.ExcludedTerms != nil {
		c.Genius.ExcludedTerms = g.ExcludedTerms
	}
	if g.MaxPerPage != nil && *g.MaxPerPage > 0 {
		c.Genius.MaxPerPage = min(*g.MaxPerPage, 50)
	}
	if g.LenientStartup != nil {
		c.Options.LenientStartup = *g.LenientStartup
	}

	if t := fc.Server.Transport; t != nil && (*t == "stdio" || *t == "http") {
		c.Server.Transport = *t
	}
	if p := fc.Server.Port; p != nil && *p != "" {
		c.Server.Port = *p
	}

	if l := fc.Logging.Level; l != nil && *l != "" {
		c.Logging.Level = strings.ToLower(*l)
	}
	if f := fc.Logging.File; f != nil {
		c.Logging.File = *f
	}
	if d := fc.Logging.DevMode; d != nil {
		c.Logging.DevMode = *d
	}

	if d := fc.Sentry.DSN; d != nil {
		c.Sentry.DSN = *d
	}
	if r := fc.Sentry.Release; r != nil {
		c.Sentry.Release = *r
	}
}
