package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file.
const FileName = ".flatconf.yaml"

// FileConfig represents the contents of .flatconf.yaml.
type FileConfig struct {
	Strict   *bool  `yaml:"strict"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	Debug    *bool  `yaml:"debug"`
	Theme    string `yaml:"theme"`

	Files       []string `yaml:"files"`
	Ignores     []string `yaml:"ignores"`
	IgnoreFiles []string `yaml:"ignore_files"`

	// Fragments are fragment files appended after the built-in entries.
	Fragments []string `yaml:"fragments"`
	Lazy      bool     `yaml:"lazy"`

	TypeScript *TypeScriptConfig `yaml:"typescript"`

	Rules           map[string]any `yaml:"rules"`
	LanguageOptions map[string]any `yaml:"language_options"`
	LinterOptions   map[string]any `yaml:"linter_options"`
	Settings        map[string]any `yaml:"settings"`

	// Path is where the file was loaded from; empty for defaults.
	Path string `yaml:"-"`
}

// TypeScriptConfig enables and tunes the TypeScript entries.
type TypeScriptConfig struct {
	Enabled                  bool     `yaml:"enabled"`
	TypeChecked              string   `yaml:"type_checked"`
	Project                  []string `yaml:"project"`
	ProjectService           bool     `yaml:"project_service"`
	TsconfigRootDir          string   `yaml:"tsconfig_root_dir"`
	FilesDisableTypeChecking []string `yaml:"files_disable_type_checking"`
}

// LoadConfig loads the config file at path. An empty path searches for
// .flatconf.yaml; when none is found the zero FileConfig is returned.
// Relative fragment and ignore file paths in the file are resolved against
// the file's directory.
func LoadConfig(path string) (*FileConfig, error) {
	if path == "" {
		path = getConfigPath()
		if path == "" {
			return &FileConfig{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.Path = path
	cfg.rebase(filepath.Dir(path))
	return &cfg, nil
}

// rebase makes relative file paths relative to dir, the directory holding
// the config file. Globs are left alone.
func (c *FileConfig) rebase(dir string) {
	c.Fragments = rebasePaths(dir, c.Fragments)
	c.IgnoreFiles = rebasePaths(dir, c.IgnoreFiles)
	if c.TypeScript != nil && c.TypeScript.TsconfigRootDir != "" {
		c.TypeScript.TsconfigRootDir = rebasePath(dir, c.TypeScript.TsconfigRootDir)
	}
}

func rebasePaths(dir string, paths []string) []string {
	for i, p := range paths {
		paths[i] = rebasePath(dir, p)
	}
	return paths
}

func rebasePath(dir, p string) string {
	if p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// getConfigPath finds .flatconf.yaml in the working directory or one of its
// parents, then in the user config directory.
func getConfigPath() string {
	if wd, err := os.Getwd(); err == nil {
		if p := findUp(wd, FileName); p != "" {
			return p
		}
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "flatconf", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

// findUp returns the first dir/name that exists, walking from dir to the
// filesystem root.
func findUp(dir, name string) string {
	for {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		} else if !errors.Is(err, fs.ErrNotExist) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
