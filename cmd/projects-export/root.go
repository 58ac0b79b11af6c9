package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Sternrassler/hackathon-export/pkg/cache"
	"github.com/Sternrassler/hackathon-export/pkg/client"
	"github.com/Sternrassler/hackathon-export/pkg/export"
	"github.com/Sternrassler/hackathon-export/pkg/logging"
	"github.com/Sternrassler/hackathon-export/pkg/metrics"
	"github.com/Sternrassler/hackathon-export/pkg/pagination"
	"github.com/Sternrassler/hackathon-export/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// options are the ambient settings of a run. What is exported (hackathon,
// page range, output path) is fixed by pagination.DefaultConfig.
type options struct {
	logLevel    string
	pretty      bool
	metricsFile string
	redisURL    string
	cacheTTL    time.Duration
	userAgent   string
	baseURL     string
}

func defaultOptions() options {
	clientCfg := client.DefaultConfig()
	return options{
		logLevel:    getEnv("LOG_LEVEL", string(logging.LevelInfo)),
		metricsFile: getEnv("METRICS_FILE", ""),
		redisURL:    getEnv("REDIS_URL", ""),
		cacheTTL:    cache.DefaultTTL,
		userAgent:   getEnv("USER_AGENT", clientCfg.UserAgent),
		baseURL:     clientCfg.BaseURL,
	}
}

func newRootCmd() *cobra.Command {
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "projects-export",
		Short: "Export hackathon project submissions to CSV",
		Long: `projects-export fetches every page of the hackathon projects listing,
one page per second, and writes one CSV row per project to projects.csv.

A non-zero exit means the export is incomplete and must be re-run.`,
		Version:       "0.1.0",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, pagination.DefaultConfig(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.pretty, "pretty", opts.pretty, "human-readable log output instead of JSON")
	flags.StringVar(&opts.metricsFile, "metrics-file", opts.metricsFile, "write Prometheus metrics to this textfile after the run")
	flags.StringVar(&opts.redisURL, "redis-url", opts.redisURL, "Redis address for the page cache (disabled when empty)")
	flags.DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "page cache TTL when the API sends no Expires header")
	flags.StringVar(&opts.userAgent, "user-agent", opts.userAgent, "User-Agent header for API requests")
	flags.StringVar(&opts.baseURL, "base-url", opts.baseURL, "API base URL")

	return cmd
}

// run performs one export. stdout receives the progress lines.
func run(ctx context.Context, opts options, cfg pagination.Config, stdout io.Writer) (err error) {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(opts.logLevel),
		Pretty: opts.pretty,
		Output: os.Stderr,
		RunID:  uuid.NewString(),
	})
	logger := logging.NewLogger("cli")

	if err := cfg.Validate(); err != nil {
		return err
	}

	clientCfg := client.DefaultConfig()
	clientCfg.BaseURL = opts.baseURL
	clientCfg.HackathonName = cfg.HackathonName
	clientCfg.UserAgent = opts.userAgent
	clientCfg.CacheTTL = opts.cacheTTL

	if opts.redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: opts.redisURL,
		})
		defer redisClient.Close()

		manager := cache.NewManager(redisClient)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := manager.Ping(pingCtx); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", opts.redisURL, err)
		}
		logger.Info().Str("redis", opts.redisURL).Msg("Page cache enabled")
		clientCfg.Cache = manager
	}

	apiClient, err := client.New(clientCfg)
	if err != nil {
		return err
	}
	defer apiClient.Close()

	exporter, err := export.Create(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := exporter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if opts.metricsFile != "" {
		defer func() {
			if mErr := metrics.WriteTextfile(opts.metricsFile); mErr != nil {
				logger.Warn().Err(mErr).Str("path", opts.metricsFile).Msg("Failed to write metrics")
			}
		}()
	}

	paginator := pagination.New(
		cfg,
		apiClient,
		exporter,
		ratelimit.NewFixedDelay(cfg.RequestDelay, logging.NewLogger("throttle")),
		logging.NewConsoleNotifier(stdout, logger),
	)

	summary, err := paginator.Run(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Int("pages", summary.Pages).
			Int("rows", summary.Rows).
			Msg("Export failed; output is incomplete")
		return err
	}

	return nil
}
