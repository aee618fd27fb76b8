// Package cache provides a generic in-process LRU cache with idle expiry.
//
// The site server keeps one form session per visitor in an LRU so that a
// flood of new visitors cannot grow memory without bound, and idle sessions
// disappear after the configured TTL:
//
//	sessions := cache.NewLRU[string, *website.Session](10_000,
//		cache.WithTTL[string, *website.Session](30*time.Minute),
//	)
//	s, err := sessions.GetOrCreate(visitorID, func() (*website.Session, error) {
//		return website.NewSession(store, tr)
//	})
//
// Durable state (CSRF tokens and rate-limit records) lives in the kvstore,
// so an evicted session is rebuilt from storage on the next request.
package cache
