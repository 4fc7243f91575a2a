package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to config file (yaml or toml)")
	debug := flag.Bool("debug", false, "enable debug logging")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	plain := flag.Bool("plain", false, "print the list instead of starting the TUI")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("notes version %s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.SlogLevel()
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:  *groupPending,
		Plain:  *plain,
		Config: cfg,
		Logger: logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
