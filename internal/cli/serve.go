package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/alzentdigital/website"
	"github.com/alzentdigital/website/pkg/config"
	"github.com/alzentdigital/website/pkg/cookie"
	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/environment"
	"github.com/alzentdigital/website/pkg/formguard"
	"github.com/alzentdigital/website/pkg/httpserver"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/logger"
	"github.com/alzentdigital/website/pkg/site"
)

const minPruneInterval = time.Minute

func newServeCmd() *cobra.Command {
	var withInquiry bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the website and its form API",
		Long: `Serve the static site behind the security headers together with the form
API. Submissions go to DISPATCH_ENDPOINT when it is set and are delivered
in-process through the email service otherwise.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), withInquiry)
		},
	}
	cmd.Flags().BoolVar(&withInquiry, "with-send-email", true, "also mount the send-email endpoint")
	return cmd
}

func runServe(ctx context.Context, withInquiry bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, logCfg, err := newLogger()
	if err != nil {
		return err
	}

	var (
		srvCfg      httpserver.Config
		siteCfg     site.Config
		cookieCfg   cookie.Config
		dispatchCfg dispatch.Config
	)
	if err := errors.Join(
		config.Load(&srvCfg),
		config.Load(&siteCfg),
		config.Load(&cookieCfg),
		config.Load(&dispatchCfg),
	); err != nil {
		return err
	}

	store, checks, closeStore, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("closing store", logger.Error(err))
		}
	}()

	tr, err := i18n.NewDefaultTranslator(ctx, i18n.WithLogger(log))
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}
	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	svc, inquiryHandler, err := newInquiry(log, tr)
	if err != nil {
		return err
	}

	var dispatcher dispatch.Dispatcher = svc
	if dispatchCfg.Enabled() {
		client, err := dispatch.NewClientFromConfig(dispatchCfg, dispatch.WithLogger(log))
		if err != nil {
			return err
		}
		dispatcher = client
		log.InfoContext(ctx, "dispatching submissions over HTTP", slog.String("endpoint", dispatchCfg.Endpoint))
	}

	opts := []site.Option{
		site.WithLogger(log),
		site.WithEnvironment(environment.Parse(logCfg.Env)),
		site.WithReadinessChecks(checks...),
		site.WithSessionOptions(website.WithGuardOptions(formguard.WithDispatcher(dispatcher))),
	}
	if withInquiry {
		opts = append(opts, site.WithInquiry(inquiryHandler))
	}
	srv, err := site.New(siteCfg, store, tr, cookies, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go pruneSessions(ctx, srv, siteCfg.SessionTTL, log)

	return httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.OnStart(func(addr string) {
			log.Info("website listening", slog.String("addr", addr))
		}),
	).Run(ctx, srv.Router())
}

// pruneSessions drops idle visitor sessions and expired keys every half
// session TTL, or every minute when sessions never idle out, until ctx ends.
func pruneSessions(ctx context.Context, srv *site.Server, ttl time.Duration, log *slog.Logger) {
	interval := minPruneInterval
	if ttl > 0 {
		interval = max(ttl/2, minPruneInterval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := srv.PruneSessions(ctx); n > 0 {
				log.Debug("pruned idle sessions", slog.Int("count", n), slog.Int("remaining", srv.Sessions()))
			}
		}
	}
}
