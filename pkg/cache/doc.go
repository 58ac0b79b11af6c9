// Package cache provides an optional Redis-backed cache for listing pages.
//
// A cached page body lets a re-run of the export skip the network for
// pages it has already seen within the TTL. The cache is never required:
// the client runs without it, and a cache failure only costs a request.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.CacheKey{
//		Endpoint:    "/hackathon/projects",
//		QueryParams: url.Values{"page": []string{"3"}, "hackathonName": []string{"grizzlython"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API
//	}
//
// # HTTP Response Caching
//
//	entry, err := cache.ResponseToEntry(resp, cache.DefaultTTL)
//	if err != nil {
//		return err
//	}
//	if err := manager.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
// # Metrics
//
//   - hackathon_export_cache_hits_total - Cache hits
//   - hackathon_export_cache_misses_total - Cache misses
//   - hackathon_export_cache_errors_total{operation} - Cache operation errors
package cache
