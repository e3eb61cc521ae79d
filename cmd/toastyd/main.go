// Package main is the entry point for the toastyd notification daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/daemon"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/toasty/toasty.toml)")
	verbose := flag.Bool("verbose", false, "Log at debug level regardless of [log] level")
	headless := flag.Bool("headless", false, "Serve D-Bus without showing anything (no GTK display needed)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("toastyd version", version)
		os.Exit(0)
	}

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if l, err := cfg.LogLevel(); err == nil {
		level.Set(l)
	}

	opts := daemon.Options{
		ConfigPath: *configPath,
		Version:    version,
		Level:      level,
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.Path()
	}
	if *verbose {
		level.Set(slog.LevelDebug)
		// Keep debug output even if a reload lowers [log] level.
		opts.Level = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var status int
	if *headless {
		status = daemon.NewHeadless(cfg, opts, logger).Run(ctx)
	} else {
		status = daemon.New(cfg, opts, logger).Run(ctx)
	}
	stop()
	os.Exit(status)
}
