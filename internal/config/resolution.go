package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dkoosis/commentcheck/pkg/cloc"
	"github.com/dkoosis/commentcheck/pkg/ratio"
	"github.com/dkoosis/commentcheck/pkg/render"
)

// Output formats.
const (
	FormatAuto     = "auto"
	FormatText     = "text"
	FormatTerminal = "terminal"
	FormatJSON     = "json"
	FormatCheck    = "check"
)

// Formats lists the accepted -format values.
var Formats = []string{FormatAuto, FormatText, FormatTerminal, FormatJSON, FormatCheck}

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigPath string
	Threshold  float64
	Format     string
	Theme      string
	Tool       string
	Debug      bool

	// Flags to track if they were explicitly set by the user
	ThresholdSet bool
	FormatSet    bool
	ThemeSet     bool
	ToolSet      bool
	DebugSet     bool
}

// ResolvedConfig holds the final resolved configuration after applying all priority rules.
type ResolvedConfig struct {
	Threshold float64
	Cloc      cloc.Options
	Format    string
	Theme     string
	NoColor   bool
	Debug     bool

	// Resolution metadata (for debugging)
	ConfigFile      string
	ThresholdSource string // "cli", "file", "default"
	ThemeSource     string // "cli", "env", "file", "default"
}

// ResolveConfig resolves configuration from all sources with explicit priority order.
// root is the scan root, searched for the config file.
func ResolveConfig(cliFlags CliFlags, root string) (*ResolvedConfig, error) {
	appCfg, path, err := LoadConfig(root, cliFlags.ConfigPath)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		Threshold:       ratio.DefaultThreshold,
		Cloc:            cloc.DefaultOptions(),
		Format:          FormatAuto,
		Theme:           "default",
		Debug:           appCfg.Debug,
		ConfigFile:      path,
		ThresholdSource: "default",
		ThemeSource:     "default",
	}

	// File layer
	if appCfg.Threshold != nil {
		resolved.Threshold = *appCfg.Threshold
		resolved.ThresholdSource = "file"
	}
	if appCfg.Tool != "" {
		resolved.Cloc.Binary = appCfg.Tool
	}
	if appCfg.ExcludeDirs != nil {
		resolved.Cloc.ExcludeDirs = appCfg.ExcludeDirs
	}
	if appCfg.ExcludeLangs != nil {
		resolved.Cloc.ExcludeLangs = appCfg.ExcludeLangs
	}
	if appCfg.Format != "" {
		resolved.Format = appCfg.Format
	}
	if appCfg.Theme != "" {
		resolved.Theme = appCfg.Theme
		resolved.ThemeSource = "file"
	}

	// Environment layer
	if os.Getenv("NO_COLOR") != "" {
		resolved.NoColor = true
	}
	if envDebug := getEnvBool("COMMENTCHECK_DEBUG"); envDebug != nil {
		resolved.Debug = *envDebug
	}

	// CLI layer
	if cliFlags.ThresholdSet {
		resolved.Threshold = cliFlags.Threshold
		resolved.ThresholdSource = "cli"
	}
	if cliFlags.ToolSet {
		resolved.Cloc.Binary = cliFlags.Tool
	}
	if cliFlags.FormatSet {
		resolved.Format = cliFlags.Format
	}
	if cliFlags.ThemeSet {
		resolved.Theme = cliFlags.Theme
		resolved.ThemeSource = "cli"
	}
	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
	}

	// NO_COLOR wins over any theme except an explicit CLI choice.
	if resolved.NoColor && resolved.ThemeSource != "cli" {
		resolved.Theme = "mono"
		resolved.ThemeSource = "env"
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

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
	if math.IsNaN(cfg.Threshold) || math.IsInf(cfg.Threshold, 0) || cfg.Threshold < 0 || cfg.Threshold > 100 {
		return fmt.Errorf("invalid threshold %g (must be between 0 and 100)", cfg.Threshold)
	}
	if err := oneOf("format", cfg.Format, Formats); err != nil {
		return err
	}
	if err := oneOf("theme", cfg.Theme, render.ThemeNames); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Cloc.Binary) == "" {
		return fmt.Errorf("tool path cannot be empty")
	}
	return nil
}

func oneOf(what, value string, valid []string) error {
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	msg := fmt.Sprintf("unknown %s %q", what, value)
	if s := suggest(value, valid); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return fmt.Errorf("%s; expected one of: %s", msg, strings.Join(valid, ", "))
}

// suggest returns the closest valid name, or "" if nothing is close.
func suggest(value string, valid []string) string {
	if value == "" {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(value, valid)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
