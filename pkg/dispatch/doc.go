// Package dispatch is the client side of the email dispatcher.
//
// A Payload describes one form submission. Client posts it as JSON to the
// dispatcher endpoint with a bounded timeout and classifies failures so the
// caller can decide whether to retry:
//
//	c, err := dispatch.NewClient("https://api.example.com/api/send-email",
//		dispatch.WithSigningSecret(secret),
//	)
//	resp, err := c.Dispatch(ctx, payload)
//	if dispatch.IsRetryable(err) {
//		// network failure or timeout
//	}
//
// Requests may be signed with HMAC-SHA256 (Sign, Verify) and guarded by a
// CircuitBreaker that stops hammering a dispatcher returning server errors.
package dispatch
