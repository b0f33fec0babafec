// Package logformat recognises the severity of log lines.
package logformat

import (
	"bytes"

	"github.com/TimelordUK/lview/internal/config"
)

// Level is the detected severity of a line
type Level int

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	case LevelFatal:
		return "FTL"
	}
	return ""
}

type levelPatterns struct {
	level    Level
	patterns [][]byte
}

// LevelDetector detects log levels from line content
type LevelDetector struct {
	// most severe first
	ordered []levelPatterns
}

// NewLevelDetector creates a detector from config
func NewLevelDetector(cfg *config.LogLevelConfig) *LevelDetector {
	d := &LevelDetector{}
	d.add(LevelFatal, cfg.FatalPatterns)
	d.add(LevelError, cfg.ErrorPatterns)
	d.add(LevelWarn, cfg.WarnPatterns)
	d.add(LevelInfo, cfg.InfoPatterns)
	d.add(LevelDebug, cfg.DebugPatterns)
	d.add(LevelTrace, cfg.TracePatterns)
	return d
}

func (d *LevelDetector) add(level Level, patterns []string) {
	lp := levelPatterns{level: level}
	for _, p := range patterns {
		if p != "" {
			lp.patterns = append(lp.patterns, []byte(p))
		}
	}
	d.ordered = append(d.ordered, lp)
}

// Detect returns the most severe level whose pattern occurs in the line
func (d *LevelDetector) Detect(content []byte) Level {
	for _, lp := range d.ordered {
		for _, p := range lp.patterns {
			if bytes.Contains(content, p) {
				return lp.level
			}
		}
	}
	return LevelUnknown
}
