package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PingTimeout bounds a single readiness ping so a stalled server fails the
// readiness check instead of holding it open.
const PingTimeout = 2 * time.Second

// Healthcheck returns a readiness check for the visitor state store, shaped
// for httpserver.Check.
//
//	check := httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, PingTimeout)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
