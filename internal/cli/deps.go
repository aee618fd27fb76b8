package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alzentdigital/website/pkg/clientip"
	"github.com/alzentdigital/website/pkg/config"
	"github.com/alzentdigital/website/pkg/email"
	"github.com/alzentdigital/website/pkg/httpserver"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/inquiry"
	"github.com/alzentdigital/website/pkg/kvstore"
	"github.com/alzentdigital/website/pkg/logger"
	"github.com/alzentdigital/website/pkg/redis"
	"github.com/alzentdigital/website/pkg/requestid"
	"github.com/alzentdigital/website/pkg/site"
)

// newLogger builds the process logger and installs it as the slog default.
func newLogger() (*slog.Logger, logger.Config, error) {
	var cfg logger.Config
	if err := config.Load(&cfg); err != nil {
		return nil, cfg, err
	}
	log := logger.NewFromConfig(cfg, logger.WithContextExtractors(
		requestid.LogExtractor(),
		clientip.LogExtractor(),
		site.VisitorLogExtractor(),
	))
	logger.SetAsDefault(log)
	return log, cfg, nil
}

// openStore connects to Redis when REDIS_URL is set and falls back to the
// in-memory store otherwise. Both expire keys after REDIS_KEY_TTL. The
// returned close func is never nil.
func openStore(ctx context.Context, log *slog.Logger) (kvstore.Store, []httpserver.Check, func() error, error) {
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, nil, err
	}
	if !cfg.Enabled() {
		log.WarnContext(ctx, "REDIS_URL not set, visitor state is kept in memory")
		return kvstore.NewMemory(kvstore.WithMemoryTTL(cfg.KeyTTL)), nil, func() error { return nil }, nil
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	var store kvstore.Store = kvstore.NewRedis(client, kvstore.WithKeyTTL(cfg.KeyTTL))
	if cfg.KeyPrefix != "" {
		store = kvstore.WithPrefix(store, cfg.KeyPrefix)
	}
	check := httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}
	return store, []httpserver.Check{check}, client.Close, nil
}

// newInquiry builds the email service and its HTTP front.
func newInquiry(log *slog.Logger, tr *i18n.Translator) (*inquiry.Service, *inquiry.Handler, error) {
	var (
		emailCfg   email.Config
		inquiryCfg inquiry.Config
	)
	if err := errors.Join(config.Load(&emailCfg), config.Load(&inquiryCfg)); err != nil {
		return nil, nil, err
	}

	sender, err := email.NewSender(emailCfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("creating email sender: %w", err)
	}
	svc, err := inquiry.NewService(sender, tr,
		inquiry.WithRecipient(inquiryCfg.RecipientEmail),
		inquiry.WithLogger(log),
	)
	if err != nil {
		return nil, nil, err
	}
	return svc, inquiry.NewHandler(svc, inquiryCfg, inquiry.WithHandlerLogger(log)), nil
}
