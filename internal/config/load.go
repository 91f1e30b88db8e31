package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DirName is the directory that holds config.json, both in the user's home and in projects.
const DirName = ".diffreview"

// EnvVars maps settings to the environment variables that override them.
var EnvVars = map[string]string{
	"granularity": "DIFFREVIEW_GRANULARITY",
	"color":       "DIFFREVIEW_COLOR",
	"context":     "DIFFREVIEW_CONTEXT",
	"timeout":     "DIFFREVIEW_TIMEOUT",
}

// LoadOptions locate the configuration sources. Zero values use the real environment.
type LoadOptions struct {
	HomeDir string                          // Defaults to os.UserHomeDir (or %LOCALAPPDATA% on Windows).
	WorkDir string                          // Where the nearest-file search starts. Defaults to os.Getwd.
	Getenv  func(key string) (string, bool) // Defaults to os.LookupEnv.
}

// Load loads configuration from the standard sources.
func Load() (Config, error) {
	return LoadWith(LoadOptions{})
}

// LoadWith loads configuration from the sources described by opts.
func LoadWith(opts LoadOptions) (Config, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.LookupEnv
	}

	cfg := Default()
	for _, path := range filePaths(opts) {
		if err := applyJSONFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("load configuration: %w", err)
		}
	}

	for _, key := range keys {
		name := EnvVars[key]
		val, ok := opts.Getenv(name)
		if !ok || strings.TrimSpace(val) == "" {
			// An empty variable never overrides a file setting.
			continue
		}
		if err := cfg.Set(key, val, Source{Kind: "env", Path: name}); err != nil {
			return Config{}, fmt.Errorf("load configuration: %s: %w", name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// filePaths returns the JSON files to read, lowest precedence first.
func filePaths(opts LoadOptions) []string {
	var paths []string

	home := opts.HomeDir
	if home == "" {
		if runtime.GOOS == "windows" {
			home = strings.TrimSpace(os.Getenv("LOCALAPPDATA"))
		}
		if home == "" {
			home, _ = os.UserHomeDir()
		}
	}
	var homeCfg string
	if home != "" {
		homeCfg = filepath.Join(home, DirName, "config.json")
		paths = append(paths, homeCfg)
	}

	start := opts.WorkDir
	if start == "" {
		start, _ = os.Getwd()
	}
	if nearest := findNearest(filepath.Join(DirName, "config.json"), start); nearest != "" && nearest != homeCfg {
		paths = append(paths, nearest)
	}
	return paths
}

// findNearest searches upward from start for the first non-empty file named rel, returning "" if there is none.
func findNearest(rel, start string) string {
	if start == "" {
		return ""
	}
	for dir := start; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, rel)
		if data, err := os.ReadFile(candidate); err == nil && len(bytes.TrimSpace(data)) > 0 {
			return candidate
		}
		if parent := filepath.Dir(dir); parent == dir {
			return ""
		}
	}
}

// fileConfig mirrors Config with optional fields, so only keys present in a file override earlier sources.
type fileConfig struct {
	Granularity *string   `json:"granularity"`
	Color       *string   `json:"color"`
	Context     *int      `json:"context"`
	Timeout     *Duration `json:"timeout"`
}

func applyJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var fc fileConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	src := Source{Kind: "json_file", Path: path}
	if fc.Granularity != nil {
		if err := cfg.Set("granularity", *fc.Granularity, src); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if fc.Color != nil {
		if err := cfg.Set("color", *fc.Color, src); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if fc.Context != nil {
		cfg.Context = *fc.Context
		cfg.Sources["context"] = src
	}
	if fc.Timeout != nil {
		cfg.Timeout = *fc.Timeout
		cfg.Sources["timeout"] = src
	}
	return nil
}

// WriteJSON writes cfg as indented JSON, with each setting's source in a "sources" object.
func WriteJSON(w io.Writer, cfg Config) error {
	sources := make(map[string]string, len(cfg.Sources))
	for k, s := range cfg.Sources {
		sources[k] = s.String()
	}
	out := struct {
		Config
		Sources map[string]string `json:"sources"`
	}{cfg, sources}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
