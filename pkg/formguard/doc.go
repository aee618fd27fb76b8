// Package formguard orchestrates the security pipeline of a site form.
//
// A Guard owns one Form and walks it through a small state machine:
//
//	unarmed -> armed -> submitting -> success | failed -> armed
//
// Arming injects a hidden CSRF field and a honeypot field. Input sanitizes
// values as they arrive and Blur validates a single field. Submit runs the
// gates in order, stopping at the first rejection:
//
//  1. honeypot filled: silent abort, nothing recorded
//  2. rate limit exceeded: localized cooldown message
//  3. validation failed: inline field errors
//  4. visible values sanitized in place
//  5. attempt recorded with the rate limiter
//  6. submit control disabled with a "sending" label
//  7. payload handed to the dispatcher
//
// A network or timeout failure is retried once after DefaultRetryDelay with
// the same payload and without another recorded attempt. The result of every
// operation is a View, plain data describing what the page should show.
package formguard
