// Package config handles configuration loading and merging for flatconf.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--strict, --format, --log-level, --theme, etc.)
//  2. Environment variables (FLATCONF_STRICT, FLATCONF_FORMAT, FLATCONF_LOG_LEVEL, FLATCONF_DEBUG)
//  3. YAML config file (.flatconf.yaml in the working directory or a parent,
//     or $XDG_CONFIG_HOME/flatconf/.flatconf.yaml)
//  4. Hardcoded defaults
//
// List values (files, ignores, ignore files, fragments) are not overridden:
// values from the command line are appended to those from the file.
//
// # Environment Variables
//
// The following environment variables are recognized:
//
//   - FLATCONF_STRICT: "true" or "1" selects the exhaustive base rule set
//   - FLATCONF_FORMAT: one of auto, json, terminal, text
//   - FLATCONF_LOG_LEVEL: a zerolog level name
//   - FLATCONF_DEBUG: set to any non-empty value to enable debug logging
package config
