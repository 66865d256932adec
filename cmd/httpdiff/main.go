package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/ryanjanoconnell/httpdiff/internal/cache"
	"github.com/ryanjanoconnell/httpdiff/internal/capture"
	"github.com/ryanjanoconnell/httpdiff/internal/cli"
	"github.com/ryanjanoconnell/httpdiff/internal/config"
	"github.com/ryanjanoconnell/httpdiff/internal/logging"
)

func main() {
	noColor := flag.Bool("no-color", false, "disable colored output")
	filter := flag.String("filter", "", "jq expression; only matching records are listed (e.g. '.request.method == \"POST\"')")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: httpdiff [flags] capture.json [more.json ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Load()

	cleanup, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if *noColor || cfg.NoColor {
		color.NoColor = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	records, err := capture.LoadAll(ctx, flag.Args())
	if err != nil {
		slog.Error("loading captures", "error", err)
		fmt.Fprintf(os.Stderr, "httpdiff: %v\n", err)
		os.Exit(1)
	}

	if *filter != "" {
		records, err = capture.Filter(records, *filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "httpdiff: %v\n", err)
			os.Exit(1)
		}
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "httpdiff: no records to compare")
		os.Exit(1)
	}
	slog.Info("loaded records", "count", len(records), "files", flag.NArg())

	bodies, err := cache.NewBodyCache(cfg.BodyCacheMaxItems)
	if err != nil {
		fmt.Fprintf(os.Stderr, "httpdiff: %v\n", err)
		os.Exit(1)
	}

	sess := cli.New(records, bodies, cfg.MaxBodyBytes, os.Stdin, os.Stdout)
	if err := sess.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("session error", "error", err)
		fmt.Fprintf(os.Stderr, "httpdiff: %v\n", err)
		os.Exit(1)
	}
}
