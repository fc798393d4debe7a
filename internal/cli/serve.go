package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"logisticshub/internal/cache"
	intconfig "logisticshub/internal/config"
	api "logisticshub/internal/http"
	"logisticshub/internal/http/handlers"
)

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := intconfig.LoadEnv()
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				env.AppAddr = addr
			}
			return runServe(cmd.Context(), env)
		},
	}
	cmd.Flags().String("addr", "", "listen address, overrides APP_ADDR")
	return cmd
}

func runServe(ctx context.Context, env intconfig.Env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := intconfig.GetLogger()
	intconfig.SetLogLevel(env.LogLevel)

	if env.UsesDefaultSecret() {
		log.Warn("JWT_SECRET is not set, using the development secret")
	}

	if _, err := intconfig.ConnectDB(env.DatabaseDSN); err != nil {
		return err
	}
	defer intconfig.CloseDB()

	closeCache, err := setupCache(ctx, env)
	if err != nil {
		return err
	}
	defer closeCache()

	settings, err := handlers.SettingsFromEnv(env)
	if err != nil {
		return err
	}
	handlers.Configure(settings)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           api.NewRouter(env),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", env.AppAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// setupCache installs the master-data cache chosen by CACHE_BACKEND.
func setupCache(ctx context.Context, env intconfig.Env) (func(), error) {
	log := intconfig.GetLogger().WithField("backend", env.CacheBackend)
	switch env.CacheBackend {
	case "redis":
		r, err := cache.DialRedis(ctx, env.RedisAddr, env.CacheTTL)
		if err != nil {
			return nil, err
		}
		cache.SetDefault(r)
		log.Info("cache ready")
		return func() { _ = r.Close() }, nil
	case "none", "off":
		cache.SetDefault(cache.Noop{})
		log.Info("cache disabled")
	default:
		cache.SetDefault(cache.NewMemory(env.CacheTTL))
		log.Info("cache ready")
	}
	return func() {}, nil
}
