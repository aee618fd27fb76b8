// Package kvstore defines the small string key-value storage the form
// pipeline persists its state in, together with in-memory, namespaced and
// Redis-backed implementations.
//
// The storage has no expiry primitive of its own. Callers that need expiry
// store a timestamp next to the value and compare it on read.
//
//	store := kvstore.NewMemory()
//	visitor := kvstore.WithPrefix(store, "visitor:"+id+":")
//	_ = visitor.Set(ctx, "alzent_csrf_token", token)
//
// Reads and writes are not transactional. Two writers racing on the same key
// resolve as last write wins.
package kvstore
