package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/TimelordUK/lview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	var commands app.Commands
	configPath := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/lview/config.toml)")
	logPath := flag.String("log", "", "write logs to this file in interactive mode")
	output := flag.String("o", "", "batch mode: write the result here (.gz compresses)")
	flag.Var(&commands, "e", "batch mode: command to apply, may be repeated")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lview [-config path] [-log path] [-e command]... [-o output] <file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		LogPath:    *logPath,
		Path:       flag.Arg(0),
		Commands:   commands,
		Output:     *output,
	}

	batch := *output != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	if batch {
		log.SetPrefix("lview: ")
		log.SetFlags(0)
		if err := app.RunBatch(ctx, opts, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "lview: %v\n", err)
			return 1
		}
		return 0
	}

	if len(commands) > 0 {
		fmt.Fprintf(os.Stderr, "lview: -e is only used in batch mode\n")
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lview: %v\n", err)
		return 1
	}
	return 0
}
