package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreapp "fedmap/internal/core/app"
	"fedmap/internal/core/config"
	"fedmap/internal/data/history"
	"fedmap/internal/engine/registry"
	"fedmap/internal/shared/observability"
	"fedmap/internal/shared/version"
	"fedmap/internal/ui/report"
)

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "fedmap v%s\n", version.Version)
		return 0
	}

	if len(opts.args) != 2 {
		fmt.Fprintln(stderr, usageLine)
		return 2
	}
	root, projectID := opts.args[0], opts.args[1]

	configureLogging(stderr, opts.verbose)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "path", opts.configPath, "error", err)
		return 1
	}
	config.ApplyEnvOverrides(cfg)
	applyOptions(opts, cfg)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.EnableTracing {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Warn("tracing disabled", "error", err)
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(flushCtx)
			}()
		}
	}

	client := registry.NewClient(cfg.Registry.BaseURL, registry.ClientOptions{
		Timeout:   cfg.Registry.Timeout,
		RateLimit: cfg.Registry.RateLimit,
		Burst:     cfg.Registry.Burst,
	})
	analysis := coreapp.New(cfg, client)

	store, err := openHistoryStoreIfEnabled(cfg)
	if err != nil {
		slog.Error("history setup failed", "error", err)
		return 1
	}
	if store != nil {
		defer store.Close()
		analysis.SetHistory(store)
	}

	if opts.runs {
		return printRuns(store, projectID, cfg.Output.Format, stdout)
	}

	catalog, err := analysis.LoadCatalog(ctx, projectID)
	if err != nil {
		slog.Error("failed to load registry catalog", "project", projectID, "registry", client.BaseURL(), "error", err)
		return 1
	}

	output := coreapp.OutputOptions{
		Format:  cfg.Output.Format,
		Diagram: cfg.Output.DiagramEnabled(),
	}
	emit := func(res *coreapp.Result) error {
		if err := analysis.Render(stdout, res, output); err != nil {
			return err
		}
		if opts.summary {
			fmt.Fprint(stderr, report.RenderSummary(analysis.Summary(res)))
		}
		return nil
	}

	res, err := analysis.Analyze(ctx, root, catalog)
	if err != nil {
		slog.Error("analysis failed", "root", root, "error", err)
		return 1
	}
	if err := emit(res); err != nil {
		slog.Error("failed to write output", "error", err)
		return 1
	}

	if !opts.watch {
		return 0
	}

	if cfg.Observability.Enabled {
		server := NewObservabilityServer(fmt.Sprintf(":%d", cfg.Observability.Port), coreapp.NewHealthService(analysis))
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(stopCtx)
		}()
	}

	err = analysis.Watch(ctx, res.Root, catalog, func(res *coreapp.Result) {
		if err := emit(res); err != nil {
			slog.Error("failed to write output", "error", err)
		}
	})
	if err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == config.DefaultConfigPath && os.IsNotExist(err) {
		slog.Debug("no config file found, using defaults", "path", path)
		return config.DefaultConfig(), nil
	}
	return nil, err
}

func openHistoryStoreIfEnabled(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

func printRuns(store *history.Store, projectID, format string, stdout io.Writer) int {
	runs, err := store.LoadRuns(projectID, 0)
	if err != nil {
		slog.Error("failed to load run history", "project", projectID, "error", err)
		return 1
	}
	render := report.RenderRunsTSV
	if format == "json" {
		render = report.RenderRunsJSON
	}
	data, err := render(runs)
	if err != nil {
		slog.Error("failed to render run history", "error", err)
		return 1
	}
	if _, err := stdout.Write(data); err != nil {
		return 1
	}
	return 0
}

// configureLogging sends structured logs to w, keeping stdout for the report
// and diagram.
func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
