// Package config handles configuration loading and merging for commentcheck.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (-threshold, -format, -theme, -tool, -debug)
//  2. Environment variables (NO_COLOR, COMMENTCHECK_DEBUG)
//  3. YAML config file (.commentcheck.yaml in the scan root or ~/.config/commentcheck/.commentcheck.yaml)
//  4. Hardcoded defaults
//
// With no flags, no environment and no file, the defaults are a 25% threshold,
// cloc excluding auxiliary directories and Markdown, and auto-detected output.
//
// # Environment Variables
//
//   - NO_COLOR: any non-empty value selects the mono theme
//   - COMMENTCHECK_DEBUG: "true" or "1" enables debug logging
package config
