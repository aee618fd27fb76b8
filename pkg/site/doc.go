// Package site assembles the public HTTP surface of the website.
//
// A Server routes static pages and the JSON form API through one chi router:
//
//	GET  /healthz, /readyz
//	GET  /api/i18n/{lang}                 client-side message catalogue
//	POST /api/language                    switch the visitor language
//	GET  /api/forms/{formID}/arm          CSRF and honeypot fields
//	POST /api/forms/{formID}/blur         inline validation of one field
//	POST /api/forms/{formID}/submit       full submission pipeline
//	POST /api/send-email                  optional, see WithInquiry
//
// Visitors are identified by a signed UUID cookie. Each visitor gets a
// website.Session whose CSRF tokens and rate-limit counters live in the
// shared kvstore under "visitor:<id>:", so they survive restarts when the
// store is Redis. Sessions themselves are cached in an LRU with idle expiry.
//
// Form endpoints accept either plain JSON or DataStar signals and answer in
// kind.
package site
