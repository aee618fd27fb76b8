// Package redis connects to the Redis server that can back visitor storage
// and exposes a health check for it.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := kvstore.NewRedis(client, kvstore.WithKeyTTL(cfg.KeyTTL))
//
// Connect retries the ping according to Config and joins the last driver
// error with ErrRedisNotReady when the server never answers.
package redis
