// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/wingedpig/sieve/internal/api"
	"github.com/wingedpig/sieve/internal/config"
	"github.com/wingedpig/sieve/internal/logging"
	"github.com/wingedpig/sieve/pkg/sieve"
	"github.com/wingedpig/sieve/pkg/source"
)

var (
	version = "0.4"
)

func main() {
	// Check for subcommands before flag parsing
	if len(os.Args) > 1 && os.Args[1] == "init" {
		if err := runInit(os.Args[2:], os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config file (default: auto-detect)")
	flag.StringVar(&opts.configPath, "c", "", "Path to config file (short)")
	flag.StringVar(&opts.sourcePath, "source", "", "NDJSON error feed to tail (overrides config)")
	flag.StringVar(&opts.sourcePath, "s", "", "NDJSON error feed to tail (short)")
	flag.BoolVar(&opts.fromStart, "from-start", false, "Read errors already in the feed")
	flag.StringVar(&opts.listen, "listen", "", "Address for the inspection API and metrics (overrides config)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging and exclusion reports")
	showVersion := flag.Bool("version", false, "Show version")
	flag.BoolVar(showVersion, "v", false, "Show version (short)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sieve %s\n", version)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

type options struct {
	configPath string
	sourcePath string
	fromStart  bool
	listen     string
	debug      bool
}

// run loads configuration, starts the engine on the error feed and blocks
// until ctx is canceled. Records and reports are written to out as JSON
// lines.
func run(ctx context.Context, opts options, out io.Writer) error {
	fc, err := loadFileConfig(ctx, opts)
	if err != nil {
		return err
	}

	if opts.sourcePath != "" {
		fc.Source.Path = opts.sourcePath
	}
	if opts.fromStart {
		fc.Source.FromStart = true
	}
	if opts.listen != "" {
		fc.Metrics.Listen = opts.listen
	}
	if opts.debug {
		fc.Debug = true
		fc.Logging.Level = "debug"
	}
	if fc.Source.Path == "" {
		return errors.New("no error feed configured (set source.path or -source)")
	}

	logger, err := logging.New(logging.Config{
		Level:  fc.Logging.Level,
		Format: fc.Logging.Format,
		Output: fc.Logging.Output,
	}, nil)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	cfg, err := sieve.ConfigFromFile(fc)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	printer := newPrinter(out)
	bus := source.NewBus()

	cfg.Target = bus
	cfg.Logger = logger
	cfg.Metrics = reg
	cfg.OnError = func(r sieve.Record) { printer.print("error", r) }
	cfg.OnPanic = func(r sieve.Record) { printer.print("panic", r) }
	cfg.OnAutoReport = func(r sieve.Report) { printer.print("report", r) }

	engine := sieve.New()
	if err := engine.Init(cfg); err != nil {
		return err
	}
	defer engine.Close()

	settle, err := time.ParseDuration(fc.Source.Settle)
	if err != nil {
		return fmt.Errorf("invalid source.settle: %w", err)
	}

	feed, err := source.OpenFile(source.FileConfig{
		Path:      fc.Source.Path,
		FromStart: fc.Source.FromStart,
		Settle:    settle,
		Logger:    logger,
	}, bus)
	if err != nil {
		return err
	}
	defer feed.Close()

	logger.Info("sieve started",
		"source", fc.Source.Path,
		"sign", engine.Sign(),
		"resolution", engine.Resolution(),
	)

	g, ctx := errgroup.WithContext(ctx)

	if fc.Metrics.Listen != "" {
		router := api.NewRouter(api.Dependencies{
			Engine:      engine,
			Gatherer:    reg,
			MetricsPath: fc.Metrics.Path,
			Logger:      logger,
		})
		g.Go(func() error {
			logger.Info("api listening", "addr", fc.Metrics.Listen)
			return api.Serve(ctx, fc.Metrics.Listen, router)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	err = g.Wait()

	// Flush whatever the triggers have not reported yet.
	if engine.PendingErrors() > 0 {
		printer.print("report", engine.Report())
	}
	logger.Info("sieve stopped", "records", len(engine.Trace()))

	return err
}

func loadFileConfig(ctx context.Context, opts options) (*config.Config, error) {
	loader := config.NewLoader()

	path := opts.configPath
	if path == "" {
		found, err := loader.FindConfig(".")
		if err != nil {
			// Running from flags alone is allowed.
			if opts.sourcePath != "" {
				return config.Default(), nil
			}
			return nil, err
		}
		path = found
	}

	log.Printf("Using config: %s", path)
	return loader.LoadWithDefaults(ctx, path)
}

// printer writes tagged JSON lines. Callbacks arrive from the file watcher
// and the interval timer concurrently.
type printer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

type line struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func newPrinter(w io.Writer) *printer {
	return &printer{enc: json.NewEncoder(w)}
}

func (p *printer) print(event string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enc.Encode(line{Event: event, Data: data}); err != nil {
		slog.Error("write output", "error", err)
	}
}
