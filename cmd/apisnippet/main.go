// Command apisnippet trims a dereferenced OpenAPI document to a token
// budget and writes it as an LLM context snippet.
//
// With no flags it reads the built-in input path, keeps the preferred tags
// that fit in 200000 cl100k_base tokens, and writes the built-in output.
//
// Usage:
//
//	apisnippet [-config apisnippet.toml] [-watch] [-schema]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/randalmurphal/apisnippet/config"
	"github.com/randalmurphal/apisnippet/snippet"
	"github.com/randalmurphal/apisnippet/tokens"
	"github.com/randalmurphal/apisnippet/watch"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("apisnippet failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("apisnippet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	watchInput := fs.Bool("watch", false, "rebuild whenever the input file changes")
	printSchema := fs.Bool("schema", false, "print the config file JSON schema and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *printSchema {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	counter, err := tokens.NewCounter(cfg.Encoding, cfg.Model)
	if err != nil {
		return err
	}

	opts := snippet.Options{
		Input:    cfg.Input,
		Output:   cfg.Output,
		Limit:    cfg.TokenLimit,
		Counter:  counter,
		Priority: cfg.PreferredTags,
		Methods:  cfg.HTTPMethods,
		Untagged: cfg.UntaggedTag,
		Fallback: cfg.FallbackEstimate,
	}
	generate := func(ctx context.Context) error {
		report, err := snippet.Generate(ctx, opts, logger)
		if err != nil {
			return err
		}
		return report.Print(stdout)
	}

	if !*watchInput {
		return generate(context.Background())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("watching input", slog.String("input", cfg.Input))
	if err := watch.New(cfg.Input, logger).Run(ctx, generate); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
