package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/scidigest/pkg/biorxiv"
	"github.com/umputun/scidigest/pkg/config"
	"github.com/umputun/scidigest/pkg/domain"
	"github.com/umputun/scidigest/pkg/feed"
	"github.com/umputun/scidigest/pkg/pipeline"
	"github.com/umputun/scidigest/pkg/pubmed"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Out     string `short:"o" long:"out" env:"OUT" default:"-" description:"output file, - for stdout"`
	Format  string `long:"format" env:"FORMAT" choice:"json" choice:"rss" default:"json" description:"digest output format"`
	BaseURL string `long:"base-url" env:"BASE_URL" default:"http://localhost:8080" description:"base URL for RSS links"`
	OPML    bool   `long:"opml" description:"export configured news feeds as OPML and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting scidigest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run loads configuration, builds the digest and writes it out
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("[INFO] loaded %s: %d categories, %d news feeds in %d buckets",
		opts.Config, len(cfg.Categories), len(cfg.FeedURLs()), len(cfg.News.Buckets))

	if opts.OPML {
		opml, err := feed.NewGenerator(opts.BaseURL).GenerateOPML(cfg.News.Buckets, time.Now())
		if err != nil {
			return fmt.Errorf("failed to generate OPML: %w", err)
		}
		return writeOutput(opts.Out, []byte(opml))
	}

	digest, err := makePipeline(cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to build digest: %w", err)
	}

	data, err := render(digest, opts)
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}
	if err := writeOutput(opts.Out, data); err != nil {
		return err
	}

	log.Printf("[INFO] digest %s written to %s", digest.RunID, outputName(opts.Out))
	return nil
}

// makePipeline wires adapters from configuration, disabled paper sources are left nil
func makePipeline(cfg *config.Config) *pipeline.Pipeline {
	parser := feed.NewParser(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	pcfg := pipeline.Config{
		News: feed.NewAdapter(parser, feed.Options{
			LookbackDays: cfg.News.LookbackDays,
			MaxItems:     cfg.News.MaxItemsPerSource,
			MaxEntries:   cfg.News.MaxEntriesScanned,
		}),
		Buckets:    cfg.News.Buckets,
		Categories: cfg.Categories,
		Journals:   cfg.JournalWeights(),
		MaxWorkers: cfg.Fetch.MaxWorkers,
		Attempts:   cfg.Fetch.Attempts,
	}

	if !cfg.Papers.PubMed.Disabled {
		client := pubmed.NewClient(cfg.Papers.PubMed.BaseURL, cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
		pcfg.Literature = pubmed.NewAdapter(client, cfg.Papers.LookbackDays, cfg.Papers.MaxResults)
	}
	if !cfg.Papers.BioRxiv.Disabled {
		pcfg.Preprints = biorxiv.NewClient(biorxiv.Options{
			BaseURL:      cfg.Papers.BioRxiv.BaseURL,
			Collections:  cfg.Papers.BioRxiv.Collections,
			LookbackDays: cfg.Papers.LookbackDays,
			Timeout:      cfg.Fetch.Timeout,
			UserAgent:    cfg.Fetch.UserAgent,
		})
	}

	return pipeline.New(pcfg)
}

// render converts digest to the requested output format
func render(d domain.Digest, opts Opts) ([]byte, error) {
	switch opts.Format {
	case "rss":
		rss, err := feed.NewGenerator(opts.BaseURL).GenerateRSS(d, "")
		if err != nil {
			return nil, err
		}
		return []byte(rss), nil
	case "json", "":
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal digest: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", opts.Format)
	}
}

// writeOutput writes data to file or to stdout for "-"
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // digest is meant to be readable
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}

// setupLog configures lgr and std logger. Logs go to stderr as stdout may carry the digest.
// Without debug only info and above are printed.
func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
