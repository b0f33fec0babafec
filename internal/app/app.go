// Package app wires the buffer engine to its two front ends: the interactive
// terminal UI and headless batch processing.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/loader"
	"github.com/TimelordUK/lview/internal/ui"
)

// Options configure a run
type Options struct {
	ConfigPath string   // empty uses the default config location
	LogPath    string   // interactive mode logs here; empty discards logs
	Path       string   // input file
	Commands   []string // batch commands, applied in order
	Output     string   // batch output file; empty writes to stdout
}

// Commands collects repeated -e flags
type Commands []string

func (c *Commands) String() string {
	return strings.Join(*c, ", ")
}

// Set implements flag.Value
func (c *Commands) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// Run starts the terminal UI and blocks until the user quits or ctx is done
func Run(ctx context.Context, opts Options) error {
	if opts.LogPath != "" {
		f, err := tea.LogToFile(opts.LogPath, "lview")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// workers stop once the UI is gone
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := config.Load(opts.ConfigPath)
	model := ui.NewModel(ctx, ui.Options{
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Path:       opts.Path,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func loaderOptions(cfg *config.Config) loader.Options {
	return loader.Options{
		Interval:    cfg.Buffer.ProgressInterval(),
		Compression: cfg.Buffer.Compression,
	}
}
