// Package metrics exposes the Prometheus registry used by the export.
// Metrics are defined in their own packages (client, export, ratelimit,
// pagination, cache) and registered via promauto on the default registry.
//
// A batch run has no scrape endpoint, so the metrics are written once at
// the end of a run in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the export.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects the registered metrics.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// WriteTextfile writes all gathered metrics to path for the node_exporter
// textfile collector. The file is replaced atomically.
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("metrics textfile path is required")
	}
	if err := prometheus.WriteToTextfile(path, Gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - hackathon_export_requests_total{status} (Counter): Listing requests by HTTP status, "network_error" or "cached"
//   - hackathon_export_request_duration_seconds (Histogram): Page fetch duration
//   - hackathon_export_errors_total{class} (Counter): Fetch errors by class (transport, status, decode)
//
// Export Metrics (pkg/export):
//   - hackathon_export_rows_written_total (Counter): Rows written to the CSV sink
//
// Pagination Metrics (pkg/pagination):
//   - hackathon_export_pages_total (Counter): Pages fetched and exported
//
// Throttle Metrics (pkg/ratelimit):
//   - hackathon_export_throttle_waits_total (Counter): Pauses taken after a page
//   - hackathon_export_throttle_wait_seconds_total (Counter): Time spent pausing
//
// Cache Metrics (pkg/cache):
//   - hackathon_export_cache_hits_total (Counter): Page cache hits
//   - hackathon_export_cache_misses_total (Counter): Page cache misses
//   - hackathon_export_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Rows exported by the last run
//   hackathon_export_rows_written_total
//
//   # Runs that failed on decode
//   hackathon_export_errors_total{class="decode"} > 0
