// Package config loads and saves lview settings.
// Settings are stored in $XDG_CONFIG_HOME/lview/config.toml, or
// ~/.config/lview/config.toml when XDG_CONFIG_HOME is unset.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Theme     ThemeConfig    `toml:"theme"`
	LogLevels LogLevelConfig `toml:"log_levels"`
	Display   DisplayConfig  `toml:"display"`
	Buffer    BufferConfig   `toml:"buffer"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Name          string         `toml:"name"`
	LineNumbers   string         `toml:"line_numbers"`
	StatusBar     string         `toml:"status_bar"`
	StatusBarText string         `toml:"status_bar_text"`
	SearchMatch   string         `toml:"search_match"`
	Preview       string         `toml:"preview"`
	Progress      string         `toml:"progress"`
	Levels        LogLevelColors `toml:"levels"`
	Tokens        TokenColors    `toml:"tokens"`
}

// LogLevelColors defines gutter colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// TokenColors defines foreground colors for highlighted tokens
type TokenColors struct {
	String      string `toml:"string"`
	Boolean     string `toml:"boolean"`
	Null        string `toml:"null"`
	Number      string `toml:"number"`
	Brace       string `toml:"brace"`
	Punctuation string `toml:"punctuation"`
	Info        string `toml:"info"`
	Warning     string `toml:"warning"`
	Error       string `toml:"error"`
	Fatal       string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	TabWidth        int  `toml:"tab_width"`
	Highlight       bool `toml:"highlight"`
}

// BufferConfig controls line storage
type BufferConfig struct {
	Compression        bool `toml:"compression"`
	ProgressIntervalMs int  `toml:"progress_interval_ms"`
}

// ProgressInterval returns the progress throttle as a duration
func (b BufferConfig) ProgressInterval() time.Duration {
	return time.Duration(b.ProgressIntervalMs) * time.Millisecond
}

const (
	defaultTabWidth         = 4
	defaultProgressInterval = 50
)

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Name:          "subtle",
			LineNumbers:   "240", // Dark gray
			StatusBar:     "236",
			StatusBarText: "252",
			SearchMatch:   "226", // Yellow
			Preview:       "52",  // Dark red background
			Progress:      "39",
			Levels: LogLevelColors{
				Trace: "240",
				Debug: "244",
				Info:  "250",
				Warn:  "214", // Orange
				Error: "167", // Soft red
				Fatal: "196", // Bright red
			},
			Tokens: TokenColors{
				String:      "114",
				Boolean:     "141",
				Null:        "141",
				Number:      "75",
				Brace:       "180",
				Punctuation: "245",
				Info:        "72",
				Warning:     "214",
				Error:       "167",
				Fatal:       "196",
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{"[TRC]", "[TRACE]", "TRACE", "TRC"},
			DebugPatterns: []string{"[DBG]", "[DEBUG]", "DEBUG", "DBG"},
			InfoPatterns:  []string{"[INF]", "[INFO]", "INFO", "INF"},
			WarnPatterns:  []string{"[WRN]", "[WARN]", "[WARNING]", "WARN", "WRN", "WARNING"},
			ErrorPatterns: []string{"[ERR]", "[ERROR]", "ERROR", "ERR"},
			FatalPatterns: []string{"[FTL]", "[FATAL]", "FATAL", "FTL", "[CRIT]", "CRITICAL"},
		},
		Display: DisplayConfig{
			ShowLineNumbers: true,
			TabWidth:        defaultTabWidth,
			Highlight:       true,
		},
		Buffer: BufferConfig{
			Compression:        true,
			ProgressIntervalMs: defaultProgressInterval,
		},
	}
}

// Load reads config from path, or from DefaultPath when path is empty.
// It never fails: a missing, unreadable or malformed file yields defaults.
func Load(path string) *Config {
	cfg := DefaultConfig()

	resolved, err := resolvePath(path)
	if err != nil {
		log.Printf("warn: config: %v", err)
		return cfg
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("warn: config: %v", err)
		}
		return cfg
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		log.Printf("warn: config %s: %v, using defaults", resolved, err)
		return DefaultConfig()
	}

	cfg.normalize()
	return cfg
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	if c.Display.TabWidth <= 0 {
		c.Display.TabWidth = defaultTabWidth
	}
	if c.Buffer.ProgressIntervalMs <= 0 {
		c.Buffer.ProgressIntervalMs = defaultProgressInterval
	}
	if strings.TrimSpace(c.Theme.Name) == "" {
		c.Theme.Name = "subtle"
	}
}

// Save writes cfg to path, or to DefaultPath when path is empty, creating
// directories as needed
func Save(path string, cfg *Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return expandPath(path)
	}
	p := DefaultPath()
	if p == "" {
		return "", errors.New("no config directory")
	}
	return p, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// DefaultPath returns the config file path, or "" when no home directory
// can be found
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lview", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lview", "config.toml")
}
