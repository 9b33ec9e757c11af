package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/house-price/internal/cache"
	"github.com/iwvelando/house-price/internal/config"
	"github.com/iwvelando/house-price/internal/features"
	"github.com/iwvelando/house-price/internal/model"
	"github.com/iwvelando/house-price/internal/server"
	"github.com/iwvelando/house-price/internal/store"
	"github.com/iwvelando/house-price/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddress string
	serveModel   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the estimate form and prediction API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveAddress != "" {
			conf.Server.Address = serveAddress
		}
		if serveModel != "" {
			conf.Model.Path = serveModel
		}

		return serve(ctx, conf, logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "path to a fitted model file (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, conf *config.Configuration, logger *zap.Logger) error {
	catalog := features.Default()

	predictor, err := buildModel(conf.Model, catalog, logger)
	if err != nil {
		return err
	}

	repo, closeCache, err := buildCache(ctx, conf.Cache, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	opts := server.Options{
		Catalog:     &catalog,
		Model:       predictor,
		Cache:       repo,
		MaxBodySize: conf.Server.BodySizeBytes(),
		Version:     version,
		Compress:    conf.Server.Compress,
		RateLimit: server.RateLimit{
			RequestsPerSecond: conf.Server.RateLimit.RequestsPerSecond,
			Burst:             conf.Server.RateLimit.Burst,
		},
	}

	if conf.History.Enabled {
		db, err := store.NewSQLite(conf.History.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		opts.History = db
		logger.Info("recording prediction history",
			zap.String("op", "main.serve"),
			zap.String("path", conf.History.Path),
		)
	}

	srv := &http.Server{
		Addr:         conf.Server.Address,
		Handler:      server.NewHandler(logger, opts),
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", conf.Server.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "main.serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// buildModel loads the configured model, or the fallback estimate when no
// path is set.
func buildModel(cfg config.ModelConfig, catalog features.Catalog, logger *zap.Logger) (model.Predictor, error) {
	if cfg.Path == "" {
		logger.Warn("no model configured, serving fallback estimate",
			zap.String("op", "main.buildModel"),
			zap.Float64("price", constants.FallbackPrediction),
		)
		return model.Fallback(), nil
	}

	m, err := model.LoadLinear(cfg.Path)
	if err != nil {
		return nil, err
	}
	order := catalog.ModelOrder()
	if len(m.Coefficients) != len(order) {
		return nil, fmt.Errorf("model has %d coefficients, form provides %d features", len(m.Coefficients), len(order))
	}
	if err := m.CheckFeatures(order); err != nil {
		return nil, err
	}

	logger.Info("loaded model",
		zap.String("op", "main.buildModel"),
		zap.String("path", cfg.Path),
	)
	return m, nil
}

// buildCache returns the configured prediction cache and a function that
// releases it. A nil repository disables caching.
func buildCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (cache.Repository, func(), error) {
	switch cfg.Driver {
	case constants.CacheDriverNone:
		return nil, func() {}, nil
	case constants.CacheDriverRedis:
		r := cache.NewRedis(cfg.RedisAddress, cfg.TTL)
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, nil, err
		}
		logger.Info("caching predictions in redis",
			zap.String("op", "main.buildCache"),
			zap.String("address", cfg.RedisAddress),
		)
		return r, func() { _ = r.Close() }, nil
	default:
		return cache.NewMemory(cfg.TTL), func() {}, nil
	}
}
