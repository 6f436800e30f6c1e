package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dkoosis/flatconf/pkg/flatconfig"
	"github.com/dkoosis/flatconf/pkg/presets/typescript"
	"github.com/dkoosis/flatconf/pkg/render"
)

// Sources recorded in ResolvedConfig.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// Output formats. FormatAuto picks terminal output for a TTY and JSON
// otherwise.
const (
	FormatAuto     = "auto"
	FormatJSON     = render.FormatJSON
	FormatTerminal = render.FormatTerminal
	FormatText     = render.FormatText
)

// Defaults.
const (
	DefaultFormat   = FormatAuto
	DefaultLogLevel = "warn"
	DefaultTheme    = "default"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigFile string
	Strict     bool
	Format     string
	LogLevel   string
	Debug      bool
	Theme      string
	Output     string

	Files       []string
	Ignores     []string
	IgnoreFiles []string
	Fragments   []string
	Lazy        bool

	TypeScript  bool
	TypeChecked string

	// Flags to track if they were explicitly set by the user
	StrictSet bool
	DebugSet  bool
}

// ResolvedConfig holds the final resolved configuration after applying all priority rules.
type ResolvedConfig struct {
	Strict   bool
	Format   string
	LogLevel string
	Debug    bool
	Theme    string
	Output   string

	Files       []string
	Ignores     []string
	IgnoreFiles []string
	Fragments   []string
	Lazy        bool

	TypeScript TypeScriptConfig

	Rules           map[string]any
	LanguageOptions map[string]any
	LinterOptions   map[string]any
	Settings        map[string]any

	// Resolution metadata (for debugging)
	ConfigPath     string
	StrictSource   string
	FormatSource   string
	LogLevelSource string
}

// ResolveConfig resolves configuration from all sources with explicit priority order.
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	fileCfg, err := LoadConfig(cliFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	return resolve(cliFlags, fileCfg)
}

func resolve(cliFlags CliFlags, fileCfg *FileConfig) (*ResolvedConfig, error) {
	resolved := &ResolvedConfig{
		Format:          DefaultFormat,
		LogLevel:        DefaultLogLevel,
		Theme:           DefaultTheme,
		Output:          cliFlags.Output,
		Files:           concat(fileCfg.Files, cliFlags.Files),
		Ignores:         concat(fileCfg.Ignores, cliFlags.Ignores),
		IgnoreFiles:     concat(fileCfg.IgnoreFiles, cliFlags.IgnoreFiles),
		Fragments:       concat(fileCfg.Fragments, cliFlags.Fragments),
		Lazy:            fileCfg.Lazy || cliFlags.Lazy,
		Rules:           fileCfg.Rules,
		LanguageOptions: fileCfg.LanguageOptions,
		LinterOptions:   fileCfg.LinterOptions,
		Settings:        fileCfg.Settings,
		ConfigPath:      fileCfg.Path,
		StrictSource:    SourceDefault,
		FormatSource:    SourceDefault,
		LogLevelSource:  SourceDefault,
	}

	// Strict: CLI > ENV > file > default
	switch {
	case cliFlags.StrictSet:
		resolved.Strict, resolved.StrictSource = cliFlags.Strict, SourceCLI
	case getEnvBool("FLATCONF_STRICT") != nil:
		resolved.Strict, resolved.StrictSource = *getEnvBool("FLATCONF_STRICT"), SourceEnv
	case fileCfg.Strict != nil:
		resolved.Strict, resolved.StrictSource = *fileCfg.Strict, SourceFile
	}

	// Format: CLI > ENV > file > default
	switch {
	case cliFlags.Format != "":
		resolved.Format, resolved.FormatSource = cliFlags.Format, SourceCLI
	case os.Getenv("FLATCONF_FORMAT") != "":
		resolved.Format, resolved.FormatSource = os.Getenv("FLATCONF_FORMAT"), SourceEnv
	case fileCfg.Format != "":
		resolved.Format, resolved.FormatSource = fileCfg.Format, SourceFile
	}

	// Debug: CLI > ENV > file > default
	switch {
	case cliFlags.DebugSet:
		resolved.Debug = cliFlags.Debug
	case os.Getenv("FLATCONF_DEBUG") != "":
		resolved.Debug = true
	case fileCfg.Debug != nil:
		resolved.Debug = *fileCfg.Debug
	}

	// LogLevel: CLI > ENV > file > debug > default
	switch {
	case cliFlags.LogLevel != "":
		resolved.LogLevel, resolved.LogLevelSource = cliFlags.LogLevel, SourceCLI
	case os.Getenv("FLATCONF_LOG_LEVEL") != "":
		resolved.LogLevel, resolved.LogLevelSource = os.Getenv("FLATCONF_LOG_LEVEL"), SourceEnv
	case fileCfg.LogLevel != "":
		resolved.LogLevel, resolved.LogLevelSource = fileCfg.LogLevel, SourceFile
	case resolved.Debug:
		resolved.LogLevel = zerolog.LevelDebugValue
	}

	if cliFlags.Theme != "" {
		resolved.Theme = cliFlags.Theme
	} else if fileCfg.Theme != "" {
		resolved.Theme = fileCfg.Theme
	}

	if fileCfg.TypeScript != nil {
		resolved.TypeScript = *fileCfg.TypeScript
	}
	if cliFlags.TypeScript {
		resolved.TypeScript.Enabled = true
	}
	if cliFlags.TypeChecked != "" {
		resolved.TypeScript.TypeChecked = cliFlags.TypeChecked
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// Options converts the resolved configuration into compose options.
func (c *ResolvedConfig) Options() flatconfig.Options {
	return flatconfig.Options{
		Files:           c.Files,
		Ignores:         c.Ignores,
		IgnoreFiles:     c.IgnoreFiles,
		Strict:          c.Strict,
		Rules:           c.Rules,
		LanguageOptions: c.LanguageOptions,
		LinterOptions:   c.LinterOptions,
		Settings:        c.Settings,
	}
}

// TypeScriptOptions converts the TypeScript section. ok is false when
// TypeScript support is disabled.
func (c *ResolvedConfig) TypeScriptOptions() (opts typescript.Options, ok bool) {
	ts := c.TypeScript
	if !ts.Enabled {
		return typescript.Options{}, false
	}
	// Validated in validateResolvedConfig.
	mode, _ := typescript.ParseTypeCheck(ts.TypeChecked)
	return typescript.Options{
		Strict:                   c.Strict,
		TypeChecked:              mode,
		Project:                  ts.Project,
		ProjectService:           ts.ProjectService,
		TsconfigRootDir:          ts.TsconfigRootDir,
		FilesDisableTypeChecking: ts.FilesDisableTypeChecking,
	}, true
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	validFormats := []string{FormatAuto, FormatJSON, FormatTerminal, FormatText}
	if !slices.Contains(validFormats, cfg.Format) {
		return fmt.Errorf("invalid format value: %s (must be: auto, json, terminal, text)", cfg.Format)
	}

	if !slices.Contains(render.ThemeNames(), cfg.Theme) {
		return fmt.Errorf("invalid theme value: %s (must be one of %v)", cfg.Theme, render.ThemeNames())
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level value: %w", err)
	}

	if _, err := typescript.ParseTypeCheck(cfg.TypeScript.TypeChecked); err != nil {
		return fmt.Errorf("invalid typescript.type_checked value: %w", err)
	}

	return nil
}

func concat(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	return append(append([]string(nil), a...), b...)
}
