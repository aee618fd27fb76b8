// Package csrf issues the per-visitor form token that is embedded in every
// protected form as the hidden "_csrf_token" field.
//
// The token is 32 random bytes encoded as 64 lowercase hex characters. It is
// kept in a kvstore.Store together with its expiry and reused until the
// expiry passes, at which point a fresh token replaces it.
//
//	store := csrf.New(visitorStore)
//	token, err := store.Token(ctx)
//
// The token adds replay friction for naive cross-site posts. Nothing on the
// server verifies it, so it must not be treated as an anti-forgery boundary.
package csrf
