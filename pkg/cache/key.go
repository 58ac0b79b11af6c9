package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "hackathon-export"

// CacheKey identifies one cached API response.
type CacheKey struct {
	// Endpoint is the API path relative to the base URL (e.g. "/hackathon/projects")
	Endpoint string

	// QueryParams are the query parameters (e.g. {"page": "3"})
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: hackathon-export:endpoint:query1=val1:query2=val2
//
// Example:
//
//	hackathon-export:hackathon/projects:hackathonName=grizzlython:page=3
func (k CacheKey) String() string {
	parts := []string{KeyPrefix}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
