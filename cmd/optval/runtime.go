package main

import (
	"fmt"

	"github.com/newthinker/optval/internal/config"
	"github.com/newthinker/optval/internal/logger"
	"github.com/newthinker/optval/internal/metrics"
	"github.com/newthinker/optval/internal/rules"
	"github.com/newthinker/optval/internal/storage/archive"
	"github.com/newthinker/optval/internal/valuation"
	"go.uber.org/zap"
)

// runtime is what every valuation command needs, built once from config.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	tables  *rules.Tables
	metrics *metrics.Registry
	engine  *valuation.Engine
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if debug {
		cfg.Log.Development = true
		cfg.Log.Level = "debug"
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log, err := logger.New(cfg.Log.Development, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if cfgFile == "" {
		log.Debug("no config file specified, using defaults")
	}

	tables, err := cfg.RuleTables()
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	opts := []valuation.EngineOpt{valuation.WithMetrics(reg)}

	if cfg.Archive.Enabled {
		store, err := openArchive(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("opening archive: %w", err)
		}
		opts = append(opts, valuation.WithArchive(store))
		log.Debug("archiving reports", zap.String("type", cfg.Archive.Type))
	}

	engine := valuation.New(valuation.Config{Volatility: cfg.Pricing.Volatility}, log, opts...)

	return &runtime{
		cfg:     cfg,
		log:     log,
		tables:  tables,
		metrics: reg,
		engine:  engine,
	}, nil
}

func openArchive(cfg config.ArchiveConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return archive.NewLocalFS(cfg.Path)
	}
}

// shutdown flushes metrics and the logger. Errors writing metrics are logged, not returned.
func (rt *runtime) shutdown() {
	path := metricsFile
	if path == "" {
		path = rt.cfg.Metrics.Textfile
	}
	if path != "" {
		if err := rt.metrics.WriteTextfile(path); err != nil {
			rt.log.Warn("writing metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}
	_ = rt.log.Sync()
}
