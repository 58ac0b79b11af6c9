package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/hackathon-export/pkg/project"
	"github.com/Sternrassler/hackathon-export/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var pagesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hackathon_export_pages_total",
	Help: "Total number of listing pages fetched and exported",
})

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid export config")

// Config holds the run configuration.
type Config struct {
	// HackathonName selects the listing
	HackathonName string

	// TotalPages is the last page index; pages 0..TotalPages are fetched
	TotalPages int

	// OutputPath is where the CSV export is written
	OutputPath string

	// RequestDelay is the pause after each page
	RequestDelay time.Duration
}

// DefaultConfig returns the configuration of the grizzlython export.
func DefaultConfig() Config {
	return Config{
		HackathonName: "grizzlython",
		TotalPages:    35,
		OutputPath:    "projects.csv",
		RequestDelay:  ratelimit.DefaultDelay,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.HackathonName == "" {
		return fmt.Errorf("%w: hackathon name is required", ErrInvalidConfig)
	}
	if c.TotalPages < 0 {
		return fmt.Errorf("%w: total pages must be >= 0 (got %d)", ErrInvalidConfig, c.TotalPages)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidConfig)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("%w: request delay must be >= 0 (got %s)", ErrInvalidConfig, c.RequestDelay)
	}
	return nil
}

// PageFetcher fetches a single page of projects.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (*project.Page, error)
}

// RowSink receives the projects of each page.
type RowSink interface {
	Export(projects []project.Project) error
	Flush() error
}

// Notifier receives human-readable progress lines.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

// Summary describes a completed run.
type Summary struct {
	Pages    int
	Rows     int
	Duration time.Duration
}

// Paginator drives fetch and export across the configured pages.
type Paginator struct {
	config   Config
	fetcher  PageFetcher
	sink     RowSink
	throttle ratelimit.Policy
	notifier Notifier
}

// New creates a paginator. A nil notifier discards progress lines.
func New(cfg Config, fetcher PageFetcher, sink RowSink, throttle ratelimit.Policy, notifier Notifier) *Paginator {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Paginator{
		config:   cfg,
		fetcher:  fetcher,
		sink:     sink,
		throttle: throttle,
		notifier: notifier,
	}
}

// Run fetches and exports pages 0..TotalPages, then flushes the sink.
// The first error aborts the run; the sink is not flushed in that case.
func (p *Paginator) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	logger := log.With().
		Str("component", "paginator").
		Str("hackathon", p.config.HackathonName).
		Logger()

	if err := p.config.Validate(); err != nil {
		return Summary{}, err
	}

	logger.Info().
		Int("total_pages", p.config.TotalPages).
		Str("output", p.config.OutputPath).
		Dur("delay", p.config.RequestDelay).
		Msg("Starting export")

	var summary Summary
	for page := 0; page <= p.config.TotalPages; page++ {
		p.notifier.Notify(fmt.Sprintf("Fetching page %d of %d", page, p.config.TotalPages))

		result, err := p.fetcher.FetchPage(ctx, page)
		if err != nil {
			logger.Error().Err(err).Int("page", page).Msg("Fetch failed, aborting export")
			return summary, fmt.Errorf("fetch page %d: %w", page, err)
		}

		var projects []project.Project
		if result != nil {
			projects = result.Data
		}

		if err := p.sink.Export(projects); err != nil {
			logger.Error().Err(err).Int("page", page).Msg("Export failed, aborting export")
			return summary, fmt.Errorf("export page %d: %w", page, err)
		}

		summary.Pages++
		summary.Rows += len(projects)
		pagesTotal.Inc()

		event := logger.Info().
			Int("page", page).
			Int("projects", len(projects)).
			Int("rows", summary.Rows)
		if result != nil {
			event = event.Int("total_count", result.TotalCount)
		}
		event.Msg("Page exported")

		p.notifier.Notify(fmt.Sprintf("Sleeping for %s to avoid overloading the API", formatDelay(p.config.RequestDelay)))
		if err := p.throttle.Wait(ctx, page); err != nil {
			return summary, fmt.Errorf("throttle after page %d: %w", page, err)
		}
	}

	if err := p.sink.Flush(); err != nil {
		logger.Error().Err(err).Msg("Flush failed")
		return summary, fmt.Errorf("flush: %w", err)
	}

	summary.Duration = time.Since(start)
	p.notifier.Notify(fmt.Sprintf("Projects written to %s", p.config.OutputPath))

	logger.Info().
		Int("pages", summary.Pages).
		Int("rows", summary.Rows).
		Dur("duration", summary.Duration).
		Msg("Export complete")

	return summary, nil
}

// formatDelay renders whole-second delays in words ("1 second", "2 seconds")
// and falls back to Duration.String otherwise.
func formatDelay(d time.Duration) string {
	if d <= 0 || d%time.Second != 0 {
		return d.String()
	}
	n := int(d / time.Second)
	if n == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", n)
}
