// Package config loads diffreview's configuration from a cascade of sources, lowest precedence first:
//   - built-in defaults
//   - the user config file, ~/.diffreview/config.json (%LOCALAPPDATA%\.diffreview\config.json on Windows)
//   - the nearest .diffreview/config.json, searching upward from the working directory
//   - DIFFREVIEW_* environment variables
//
// Command-line flags are applied on top by the caller. Missing or empty files are skipped; unreadable JSON, bad values, and unknown granularities or color modes
// are errors.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codalotl/diffreview/internal/diff"
)

// Color modes.
const (
	ColorAuto   = "auto"   // ColorAuto colors output only when writing to a terminal.
	ColorAlways = "always" // ColorAlways always colors output.
	ColorNever  = "never"  // ColorNever never colors output.
)

// Config is diffreview's configuration.
type Config struct {
	// Granularity is the unit the diff engine compares. Defaults to "char".
	Granularity diff.Granularity `json:"granularity"`

	// Color is one of "auto", "always", "never". Defaults to "auto".
	Color string `json:"color"`

	// Context is the number of unchanged lines around changes in patch output. Defaults to 3.
	Context int `json:"context"`

	// Timeout bounds diff computation. Defaults to 1s.
	Timeout Duration `json:"timeout"`

	// Sources records where each setting came from, keyed by JSON name.
	Sources map[string]Source `json:"-"`
}

// DiffOptions returns the diff engine options for cfg.
func (cfg Config) DiffOptions() diff.Options {
	return diff.Options{Granularity: cfg.Granularity, Timeout: time.Duration(cfg.Timeout)}
}

// Source describes where a setting came from.
type Source struct {
	Kind string // "default", "json_file", "env", or "flag"
	Path string // file path for json_file; variable name for env; flag name for flag.
}

func (s Source) String() string {
	if s.Path == "" {
		return s.Kind
	}
	return s.Kind + ":" + s.Path
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Granularity: diff.GranularityChar,
		Color:       ColorAuto,
		Context:     3,
		Timeout:     Duration(time.Second),
		Sources:     map[string]Source{},
	}
	for _, k := range keys {
		cfg.Sources[k] = Source{Kind: "default"}
	}
	return cfg
}

var keys = []string{"granularity", "color", "context", "timeout"}

// Set assigns the setting named key (a JSON name) from its string form, recording src as its source.
func (cfg *Config) Set(key, value string, src Source) error {
	switch key {
	case "granularity":
		g, err := diff.ParseGranularity(value)
		if err != nil {
			return err
		}
		cfg.Granularity = g
	case "color":
		c, err := parseColor(value)
		if err != nil {
			return err
		}
		cfg.Color = c
	case "context":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("context: %q is not an integer", value)
		}
		cfg.Context = n
	case "timeout":
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = Duration(d)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if cfg.Sources == nil {
		cfg.Sources = map[string]Source{}
	}
	cfg.Sources[key] = src
	return nil
}

// Validate reports the first invalid setting in cfg.
func (cfg Config) Validate() error {
	if _, err := diff.ParseGranularity(string(cfg.Granularity)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := parseColor(cfg.Color); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Context < 0 {
		return fmt.Errorf("invalid configuration: context must be >= 0 (got %d)", cfg.Context)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("invalid configuration: timeout must be >= 0 (got %s)", time.Duration(cfg.Timeout))
	}
	return nil
}

func parseColor(s string) (string, error) {
	switch c := strings.ToLower(strings.TrimSpace(s)); c {
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want one of auto, always, never)", s)
	}
}

// Duration is a time.Duration that reads and writes JSON as a string like "1.5s". Plain JSON numbers are read as seconds.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\" or a number of seconds")
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}
