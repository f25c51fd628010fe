// Package config holds the engine options loaded once at startup: curated
// table extensions and per-family conventions. The zero value leaves every
// built-in table untouched.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/grahamfi/noteparse/internal/services/aggregate"
	"github.com/grahamfi/noteparse/internal/services/source"
	"github.com/grahamfi/noteparse/internal/services/symbol"
)

const defaultDebugEchoLimit = 2000

// Config is the YAML-backed option set.
type Config struct {
	// ExtraSignatures extends the institution signature list. Consulted
	// after the built-in sets, in the order given.
	ExtraSignatures []source.SignatureSet `yaml:"extra_signatures"`
	// ExtraNameMap extends the security-name to symbol list.
	ExtraNameMap []symbol.NameMapping `yaml:"extra_name_map"`
	// DebugEchoLimit caps the raw-text echo returned when debug is requested.
	DebugEchoLimit int `yaml:"debug_echo_limit"`
	// NetValueConventions overrides the per-family fee convention,
	// family name to "include" or "exclude".
	NetValueConventions map[string]string `yaml:"net_value_conventions"`
}

// Default returns the built-in option set.
func Default() Config {
	return Config{DebugEchoLimit: defaultDebugEchoLimit}
}

// Load reads a YAML options file, applying defaults for absent fields.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse yaml config")
	}

	for family, conv := range cfg.NetValueConventions {
		if conv != string(aggregate.FeesIncluded) && conv != string(aggregate.FeesExcluded) {
			return Config{}, errors.Errorf("incorrect 'net_value_conventions' entry for %s: %q (use include or exclude)", family, conv)
		}
	}
	if cfg.DebugEchoLimit <= 0 {
		cfg.DebugEchoLimit = defaultDebugEchoLimit
	}

	return cfg, nil
}

// ConventionFor returns the configured net-value convention for family,
// falling back to the family's default.
func (c Config) ConventionFor(family string, fallback aggregate.FeeConvention) aggregate.FeeConvention {
	if conv, ok := c.NetValueConventions[family]; ok {
		return aggregate.FeeConvention(conv)
	}
	return fallback
}

// EchoLimit returns the debug echo cap, defaulting when unset.
func (c Config) EchoLimit() int {
	if c.DebugEchoLimit > 0 {
		return c.DebugEchoLimit
	}
	return defaultDebugEchoLimit
}

// DebugEcho returns the head of text capped at EchoLimit characters.
func (c Config) DebugEcho(text string) string {
	limit := c.EchoLimit()
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit])
}
