// Package pagination drives the export across a fixed range of pages.
//
// Pages are fetched strictly one after another in ascending order. Each
// page is exported before the next fetch starts, and the throttle policy
// pauses after every page, including the last. The page range comes from
// Config.TotalPages; the totalCount reported by the API is logged but
// never used as a bound.
//
// Example usage:
//
//	cfg := pagination.DefaultConfig()
//	p := pagination.New(cfg, apiClient, exporter, throttle, notifier)
//	summary, err := p.Run(ctx)
//
// Any error from the fetcher, the sink or the throttle aborts the run.
// The sink is flushed once, only after every page succeeded.
package pagination
