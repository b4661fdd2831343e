package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	"askdata.insights.org/internal/app"
	"askdata.insights.org/internal/appconf"
	"askdata.insights.org/internal/cache"
	"askdata.insights.org/internal/logging"
	"askdata.insights.org/internal/metrics"
	"askdata.insights.org/internal/restapi"
	"askdata.insights.org/internal/webui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := appconf.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := parseConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, cfg.Level())

	m := metrics.New()
	resultCache := cache.Open(cfg.RedisAddr, cfg.CacheTTL, logger, m)
	if resultCache == nil {
		logging.LogOperation(logger, "result_cache_disabled")
	} else if err := resultCache.Ping(context.Background()); err != nil {
		logging.LogError(logger, "result cache unreachable, queries will be computed", err,
			slog.String("redis_addr", cfg.RedisAddr))
	}

	application := &app.Application{
		Config:  cfg,
		Logger:  logger,
		Cache:   resultCache,
		Metrics: m,
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      buildHandler(application, api),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, srv, api.Close, logger, cfg)
	logging.SafeCloseWithLogging(resultCache, logger, "close result cache",
		slog.String("component", "result_cache"))
	if err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// parseConfig layers defaults, ASKDATA_* variables, an optional YAML file and
// command-line flags, later sources winning.
func parseConfig(args []string, lookup func(string) (string, bool)) (appconf.Config, error) {
	cfg := appconf.Default()
	if err := appconf.ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	var configPath, apiKeysFlag, exemptKeysFlag, envFlag string
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	fs.StringVar(&envFlag, "env", cfg.EnvName, "Environment (development|test|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", "", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second allowed per API key")
	fs.StringVar(&exemptKeysFlag, "rate-limit-exempt-keys", "", "Comma Separated API Keys the rate limiter skips")
	fs.DurationVar(&cfg.ResponseDelay, "response-delay", cfg.ResponseDelay, "Pause before a session query is parsed")
	fs.IntVar(&cfg.FreshnessThreshold, "freshness-threshold", cfg.FreshnessThreshold, "Days after which data is reported as stale")
	fs.DurationVar(&cfg.SessionIdleTTL, "session-idle-ttl", cfg.SessionIdleTTL, "Idle time after which a query session is dropped (0 keeps sessions)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the result cache (empty disables it)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Lifetime of cached results")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configPath != "" {
		if err := appconf.LoadFile(configPath, &cfg); err != nil {
			return cfg, err
		}
		// Flags given explicitly still override the file.
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if explicit["env"] || configPath == "" {
		cfg.EnvName = envFlag
		cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	}
	if apiKeysFlag != "" {
		cfg.ApiKeys = appconf.SplitKeys(apiKeysFlag)
	}
	if exemptKeysFlag != "" {
		cfg.RateLimitExemptKeys = appconf.SplitKeys(exemptKeysFlag)
	}

	return cfg, cfg.Validate()
}

func buildHandler(application *app.Application, api *restapi.RestAPI) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	router.Handler(http.MethodGet, "/metrics", application.Metrics.Handler())

	if application.Config.Env != appconf.Production {
		webui.New(application.Logger).SetWebUIRoutes(router)
	}

	return api.WithMiddleware(router)
}

// run serves until ctx is done, shuts srv down and then calls cleanup.
func run(ctx context.Context, srv *http.Server, cleanup func() error, logger *slog.Logger, cfg appconf.Config) (err error) {
	defer logging.HandleDeferredError(&err, cleanup, logger, "close rest api")

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
