// Package settings loads the per-project settings file that declares which
// application packages of a target project should be documented.
package settings

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// Settings describes one target project. Apps are package directories
// relative to the project root; their declaration order is preserved all the
// way into the generated document.
type Settings struct {
	Title string   `yaml:"title"`
	Apps  []string `yaml:"apps"`

	// filled in by Load, not part of the file
	Path       string `yaml:"-"`
	ModulePath string `yaml:"-"`
}

// Load reads the settings file and the target's go.mod. A missing target,
// missing go.mod or unreadable settings file is a fatal configuration error.
func Load(target, settingsPath string) (*Settings, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("target path %s: %w", target, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target path %s is not a directory", target)
	}

	modData, err := os.ReadFile(filepath.Join(target, "go.mod"))
	if err != nil {
		return nil, fmt.Errorf("target %s has no readable go.mod: %w", target, err)
	}
	mod, err := modfile.Parse("go.mod", modData, nil)
	if err != nil {
		return nil, fmt.Errorf("parse go.mod: %w", err)
	}
	if mod.Module == nil {
		return nil, fmt.Errorf("go.mod in %s has no module directive", target)
	}

	if !filepath.IsAbs(settingsPath) {
		settingsPath = filepath.Join(target, settingsPath)
	}
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", settingsPath, err)
	}
	s.Path = settingsPath
	s.ModulePath = mod.Module.Mod.Path

	for i, app := range s.Apps {
		s.Apps[i] = filepath.ToSlash(filepath.Clean(app))
	}
	if len(s.Apps) == 0 {
		apps, err := discoverApps(target)
		if err != nil {
			return nil, err
		}
		s.Apps = apps
	}
	return &s, nil
}

// discoverApps walks the target tree and returns every directory containing
// Go sources, sorted, so a settings file without an explicit app list still
// yields deterministic output.
func discoverApps(target string) ([]string, error) {
	seen := map[string]bool{}
	err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != target && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
				name == "vendor" || name == "testdata" || name == "docs") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(target, filepath.Dir(path))
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover apps: %w", err)
	}

	apps := make([]string, 0, len(seen))
	for app := range seen {
		apps = append(apps, app)
	}
	sort.Strings(apps)
	return apps, nil
}
