package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"arbor/internal/cache"
	"arbor/internal/metrics"
	"arbor/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr      string
		redisAddr string
		redisPass string
		redisDB   int
		cacheSize int
		cacheTTL  time.Duration
		maxLength int
		maxBody   int64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP generation server",
		Long:  `Serves /v1/generate, /v1/variants, /healthz and /metrics. Results for explicit seeds are cached in Redis when --redis is set, in memory otherwise.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger(cmd)
			if err != nil {
				return err
			}

			var store cache.Store
			if redisAddr != "" {
				rc := cache.NewRedis(redisAddr, redisPass, redisDB, cache.WithTTL(cacheTTL))
				defer rc.Close()
				pingCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
				err := rc.Ping(pingCtx)
				cancel()
				if err != nil {
					return fmt.Errorf("redis %s: %w", redisAddr, err)
				}
				store = rc
				logger.Info("cache", "backend", "redis", "addr", redisAddr, "ttl", cacheTTL)
			} else if cacheSize > 0 {
				store = cache.NewMemory(cacheSize, cache.WithMemoryTTL(cacheTTL))
				logger.Info("cache", "backend", "memory", "entries", cacheSize, "ttl", cacheTTL)
			}

			srv := &http.Server{
				Addr: addr,
				Handler: server.NewHandler(&server.Server{
					Cache:        store,
					Metrics:      metrics.New(),
					Logger:       logger,
					MaxLength:    maxLength,
					MaxBodyBytes: maxBody,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case sig := <-shutdown:
				logger.Info("shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("graceful shutdown incomplete", "error", err)
					return srv.Close()
				}
				logger.Info("server stopped")
				return nil
			}
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "listen address")
	f.StringVar(&redisAddr, "redis", "", "Redis address for the result cache")
	f.StringVar(&redisPass, "redis-password", "", "Redis password")
	f.IntVar(&redisDB, "redis-db", 0, "Redis database")
	f.IntVar(&cacheSize, "cache-size", 256, "in-memory cache entries when Redis is not used (0 disables)")
	f.DurationVar(&cacheTTL, "cache-ttl", time.Hour, "cache entry lifetime")
	f.IntVar(&maxLength, "max-length", server.DefaultMaxLength, "largest expanded grammar a request may ask for")
	f.Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "largest request body in bytes")
	return cmd
}
