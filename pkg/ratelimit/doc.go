// Package ratelimit throttles form submissions with a sliding window and a
// cooldown lockout.
//
// With DefaultConfig a key may record 5 attempts in any trailing minute.
// The check that finds the window full blocks the key for 5 minutes and
// clears its history; once the block lifts the key starts fresh.
//
//	limiter, err := ratelimit.New(store)
//	res, err := limiter.Check(ctx, "card-request")
//	if !res.Allowed {
//	    // tell the visitor to retry in res.RemainingMinutes() minutes
//	}
//	// ... run the remaining gates ...
//	err = limiter.RecordAttempt(ctx, "card-request")
//
// State is persisted in a kvstore.Store under "alzent_attempts_<key>" (JSON
// array of unix milliseconds) and "alzent_blocked_<key>" (unix
// milliseconds). Time comes from the server clock, or the injected one.
//
// Middleware applies the same limiter to HTTP endpoints, keyed by a KeyFunc
// such as ByClientIP, and answers 429 with Retry-After when blocked.
package ratelimit
