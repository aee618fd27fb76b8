// Package requestid correlates log records belonging to one HTTP request.
//
// Middleware picks the id from the X-Request-ID header, falls back to the
// CF-Ray header set by the edge, and generates a UUID when neither holds a
// valid value. The id is echoed in the response and stored in the request
// context:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor()))
//
// Ids longer than 128 characters or containing anything but letters,
// digits, '-' and '_' are discarded.
package requestid
