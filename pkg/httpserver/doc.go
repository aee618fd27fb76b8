// Package httpserver runs the site's HTTP listener with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns after ctx is cancelled or the process receives SIGINT or
// SIGTERM and in-flight requests have finished, bounded by the shutdown
// timeout.
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz endpoints;
// readiness checks typically ping Redis.
package httpserver
