package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desearch/internal/config"
	"desearch/internal/domain"
	"desearch/internal/eventbus"
	"desearch/internal/logging"
	"desearch/internal/search"
	"desearch/internal/tracing"
	"desearch/internal/transport"
)

// rootOptions holds the flags shared by the root and query commands
type rootOptions struct {
	configPath string
	apiURL     string
	difficulty string
	tags       []string
	limit      int
	debug      bool
}

func (o *rootOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "Path to the config file (default: user config dir)")
	f.StringVar(&o.apiURL, "api-url", "", "Base URL of the search service")
	f.StringVarP(&o.difficulty, "difficulty", "d", "", "Initial difficulty filter (Easy, Medium, Hard)")
	f.StringArrayVarP(&o.tags, "tag", "t", nil, "Initial topic tag filter (repeatable)")
	f.IntVarP(&o.limit, "limit", "n", 0, "Maximum number of results (1-100, 0 = service default)")
	f.BoolVar(&o.debug, "debug", false, "Enable debug logging")
}

func (o *rootOptions) configService() config.ConfigService {
	if o.configPath != "" {
		return config.NewConfigServiceAt(o.configPath)
	}
	return config.NewConfigService()
}

// loadConfig loads the config file and applies flag overrides
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	svc := o.configService()

	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		// an explicitly named file must exist
		cfg, err = svc.LoadFromPath(o.configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.apiURL != "" {
		cfg.APIURL = strings.TrimSpace(o.apiURL)
	}
	if cmd.Flags().Changed("limit") {
		if o.limit < 0 || o.limit > 100 {
			return nil, fmt.Errorf("%w: --limit must be between 0 and 100", config.ErrInvalid)
		}
		cfg.Limit = o.limit
	}
	if o.difficulty != "" {
		d, err := domain.ParseDifficulty(o.difficulty)
		if err != nil {
			return nil, err
		}
		cfg.DefaultDifficulty = string(d)
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// app is the wired set of services behind both the TUI and the query command
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	bus     eventbus.EventBus
	orch    *search.Orchestrator
	tracing tracing.Shutdown
}

// newApp wires logging, tracing, transport, bus and orchestrator.
// console tees log output to stderr and must stay off while the TUI runs.
func newApp(ctx context.Context, cfg *config.Config, tags []string, console bool) (*app, error) {
	logger, err := logging.New(cfg.Log, logging.Options{Console: console})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	shutdown, err := tracing.Init(ctx, cfg.Tracing, logger.Named("tracing"))
	if err != nil {
		// tracing is optional; keep going without it
		logger.Warn("tracing disabled", zap.Error(err))
	}

	httpTransport := transport.NewHTTP(transport.HTTPConfig{
		Timeout: cfg.Timeout.Std(),
		Logger:  logger,
	})
	tr := transport.NewCached(httpTransport, cfg.CacheTTL.Std())

	bus := eventbus.New(logger)

	orch, err := search.NewOrchestrator(tr,
		search.WithBaseURL(cfg.APIURL),
		search.WithLimit(cfg.Limit),
		search.WithBus(bus),
		search.WithLogger(logger),
		search.WithInitialFilters(domain.NewFilters(cfg.Difficulty(), tags...)),
	)
	if err != nil {
		bus.Close()
		return nil, err
	}

	logger.Info("desearch starting",
		zap.String("version", version),
		zap.String("api_url", cfg.APIURL),
		zap.Duration("timeout", cfg.Timeout.Std()),
		zap.Duration("cache_ttl", cfg.CacheTTL.Std()))

	return &app{
		cfg:     cfg,
		logger:  logger,
		bus:     bus,
		orch:    orch,
		tracing: shutdown,
	}, nil
}

// Close stops the bus and flushes telemetry
func (a *app) Close() {
	a.bus.Close()
	if a.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.tracing(ctx); err != nil {
			a.logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
