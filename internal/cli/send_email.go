package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/alzentdigital/website/pkg/clientip"
	"github.com/alzentdigital/website/pkg/config"
	"github.com/alzentdigital/website/pkg/httpserver"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/inquiry"
	"github.com/alzentdigital/website/pkg/kvstore"
	"github.com/alzentdigital/website/pkg/logger"
	"github.com/alzentdigital/website/pkg/ratelimit"
	"github.com/alzentdigital/website/pkg/requestid"
	"github.com/alzentdigital/website/pkg/site"
)

func newSendEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-email",
		Short: "Serve only the send-email endpoint",
		Long: `Run the send-email endpoint on its own, for deployments where the site
dispatches form payloads to a separate service over HTTP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSendEmail(cmd.Context())
		},
	}
}

func runSendEmail(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, _, err := newLogger()
	if err != nil {
		return err
	}
	var (
		srvCfg  httpserver.Config
		siteCfg site.Config
	)
	if err := errors.Join(config.Load(&srvCfg), config.Load(&siteCfg)); err != nil {
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
	limiter, err := ratelimit.New(kvstore.WithPrefix(store, "api:"),
		ratelimit.WithMaxAttempts(siteCfg.APIRequestsPerMinute),
		ratelimit.WithWindow(time.Minute),
		ratelimit.WithCooldown(siteCfg.APICooldown),
		ratelimit.WithLogger(log),
	)
	if err != nil {
		return err
	}

	tr, err := i18n.NewDefaultTranslator(ctx, i18n.WithLogger(log))
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}
	_, h, err := newInquiry(log, tr)
	if err != nil {
		return err
	}

	return httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.OnStart(func(addr string) {
			log.Info("send-email listening", slog.String("addr", addr), slog.String("path", inquiry.Path))
		}),
	).Run(ctx, inquiryRouter(h, log, limiter, checks...))
}

// inquiryRouter serves the endpoint with health checks and request ids. A nil
// limiter leaves the endpoint unthrottled.
func inquiryRouter(h *inquiry.Handler, log *slog.Logger, limiter *ratelimit.Limiter, checks ...httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, requestid.Middleware, clientip.Middleware)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, checks...))

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(ratelimit.Middleware(limiter, ratelimit.ByClientIP,
				ratelimit.WithSkip(func(req *http.Request) bool { return req.Method == http.MethodOptions }),
				ratelimit.WithMiddlewareLogger(log),
			))
		}
		h.Register(r)
	})
	return r
}
