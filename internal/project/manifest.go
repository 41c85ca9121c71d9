package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"slicec/internal/driver"
)

// Manifest is a loaded slice.toml project file. Paths inside the manifest
// are relative to the directory containing it.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the recognized slice.toml keys.
type Config struct {
	Sources          []string `toml:"sources"`
	References       []string `toml:"references"`
	Definitions      []string `toml:"definitions"`
	WarnAsError      bool     `toml:"warn-as-error"`
	Allow            []string `toml:"allow"`
	OutputDir        string   `toml:"output-dir"`
	DiagnosticFormat string   `toml:"diagnostic-format"`
}

// Find walks from startDir towards the filesystem root looking for a
// slice.toml. ok is false when none exists.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "slice.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Options converts the manifest into driver options, resolving its paths
// against the manifest root. Explicit command-line values are merged on top
// by the caller.
func (m *Manifest) Options() driver.Options {
	opts := driver.Options{
		Sources:     m.resolveAll(m.Config.Sources),
		References:  m.resolveAll(m.Config.References),
		Definitions: m.Config.Definitions,
		WarnAsError: m.Config.WarnAsError,
		Allow:       m.Config.Allow,
	}
	if m.Config.OutputDir != "" {
		opts.OutputDir = m.resolve(m.Config.OutputDir)
	}
	if m.Config.DiagnosticFormat == "json" {
		opts.DiagnosticFormat = driver.FormatJSON
	}
	return opts
}

func (m *Manifest) resolveAll(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = m.resolve(p)
	}
	return out
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Root, path)
}
