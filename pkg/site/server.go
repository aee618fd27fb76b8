package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alzentdigital/website"
	"github.com/alzentdigital/website/handler"
	"github.com/alzentdigital/website/pkg/cache"
	"github.com/alzentdigital/website/pkg/clientip"
	"github.com/alzentdigital/website/pkg/cookie"
	"github.com/alzentdigital/website/pkg/environment"
	"github.com/alzentdigital/website/pkg/httpserver"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/inquiry"
	"github.com/alzentdigital/website/pkg/kvstore"
	"github.com/alzentdigital/website/pkg/logger"
	"github.com/alzentdigital/website/pkg/ratelimit"
	"github.com/alzentdigital/website/pkg/requestid"
	"github.com/alzentdigital/website/pkg/secheaders"
)

// Server is the site's HTTP surface: static pages behind the security
// headers, the form API backed by per-visitor sessions, and optionally the
// send-email endpoint.
type Server struct {
	cfg         Config
	store       kvstore.Store
	translator  *i18n.Translator
	cookies     *cookie.Manager
	sessions    *cache.LRU[string, *website.Session]
	apiLimiter  *ratelimit.Limiter
	headers     *secheaders.Config
	inquiry     *inquiry.Handler
	checks      []httpserver.Check
	env         environment.Environment
	sessionOpts []website.Option
	log         *slog.Logger

	evictMu sync.Mutex
	evicted []string
}

// Option configures a Server.
type Option func(*Server)

// WithSessionOptions are applied to every visitor session, typically to
// plug in the email dispatcher.
func WithSessionOptions(opts ...website.Option) Option {
	return func(s *Server) { s.sessionOpts = append(s.sessionOpts, opts...) }
}

// WithInquiry mounts the send-email endpoint on the same router.
func WithInquiry(h *inquiry.Handler) Option {
	return func(s *Server) { s.inquiry = h }
}

// WithSecurityHeaders replaces secheaders.Default.
func WithSecurityHeaders(cfg secheaders.Config) Option {
	return func(s *Server) { s.headers = &cfg }
}

// WithReadinessChecks adds dependencies checked by /readyz.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(s *Server) { s.checks = append(s.checks, checks...) }
}

// WithEnvironment stores env in every request context. Outside production
// the relaxed secheaders.Development set is used unless WithSecurityHeaders
// is given.
func WithEnvironment(env environment.Environment) Option {
	return func(s *Server) { s.env = env }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New builds the server. store holds visitor state and API rate limits; a
// nil translator loads the built-in catalogue.
func New(cfg Config, store kvstore.Store, tr *i18n.Translator, cookies *cookie.Manager, opts ...Option) (*Server, error) {
	switch {
	case store == nil:
		return nil, ErrStoreRequired
	case cookies == nil:
		return nil, ErrCookiesRequired
	case cfg.SessionCapacity <= 0:
		return nil, fmt.Errorf("%w: session capacity must be positive", ErrInvalidConfig)
	case cfg.VisitorCookie == "" || cfg.LanguageCookie == "":
		return nil, fmt.Errorf("%w: cookie names are required", ErrInvalidConfig)
	}
	if tr == nil {
		var err error
		if tr, err = i18n.NewDefaultTranslator(context.Background()); err != nil {
			return nil, fmt.Errorf("site: loading translations: %w", err)
		}
	}

	s := &Server{
		cfg:        cfg,
		store:      store,
		translator: tr,
		cookies:    cookies,
		env:        environment.Production,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.headers == nil {
		cfg := secheaders.Default()
		if !s.env.IsProduction() {
			cfg = secheaders.Development()
		}
		s.headers = &cfg
	}

	limiter, err := ratelimit.New(kvstore.WithPrefix(store, "api:"),
		ratelimit.WithMaxAttempts(cfg.APIRequestsPerMinute),
		ratelimit.WithWindow(time.Minute),
		ratelimit.WithCooldown(cfg.APICooldown),
		ratelimit.WithLogger(s.log),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	s.apiLimiter = limiter

	s.sessions = cache.NewLRU(cfg.SessionCapacity,
		cache.WithTTL[string, *website.Session](cfg.SessionTTL),
		cache.WithEvictCallback(s.sessionEvicted),
	)
	s.sessionOpts = append([]website.Option{website.WithLogger(s.log)}, s.sessionOpts...)
	return s, nil
}

// Sessions returns the number of cached visitor sessions.
func (s *Server) Sessions() int { return s.sessions.Len() }

// PruneSessions drops idle sessions together with the stored state of every
// visitor evicted since the last call, then sweeps expired keys when the
// store keeps them in process. It returns the number of sessions pruned.
// The serve command calls it periodically.
func (s *Server) PruneSessions(ctx context.Context) int {
	n := s.sessions.Prune()
	s.forgetEvicted(ctx)
	if p, ok := s.store.(kvstore.Pruner); ok {
		if keys := p.Prune(); keys > 0 {
			s.log.DebugContext(ctx, "pruned expired keys", logger.Component("site"), slog.Int("count", keys))
		}
	}
	return n
}

// sessionEvicted runs under the cache lock, so it only queues the id.
func (s *Server) sessionEvicted(id string, _ *website.Session) {
	s.evictMu.Lock()
	s.evicted = append(s.evicted, id)
	s.evictMu.Unlock()
}

// forgetEvicted deletes the namespaced keys of queued visitors that have
// not come back since their session was evicted.
func (s *Server) forgetEvicted(ctx context.Context) {
	s.evictMu.Lock()
	ids := s.evicted
	s.evicted = nil
	s.evictMu.Unlock()

	d, ok := s.store.(kvstore.PrefixDeleter)
	if !ok || len(ids) == 0 {
		return
	}
	for _, id := range ids {
		if s.sessions.Contains(id) {
			continue
		}
		if _, err := d.DeletePrefix(ctx, visitorPrefix(id)); err != nil {
			s.log.WarnContext(ctx, "failed to delete visitor state",
				logger.Component("site"),
				logger.VisitorID(id),
				logger.Error(err),
			)
		}
	}
}

// Router returns the complete handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(s.env),
		secheaders.Middleware(*s.headers),
		i18n.Middleware(i18n.DefaultLangExtractor(
			i18n.WithCookieName(s.cfg.LanguageCookie),
			i18n.WithSupportedLanguages(s.translator.SupportedLanguages()...),
		)),
	)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(s.log, s.checks...))

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(s.apiLimiter, ratelimit.ByClientIP,
			ratelimit.WithOnLimitReached(s.limitReached),
			ratelimit.WithMiddlewareLogger(s.log),
		))

		if s.inquiry != nil {
			s.inquiry.Register(r)
		}
		r.Get("/api/i18n/{lang}", s.wrap(s.catalogue))

		r.Group(func(r chi.Router) {
			r.Use(s.identify)
			r.Post("/api/language", wrapJSON[LanguageRequest](s, s.setLanguage))
			r.Route("/api/forms/{formID}", func(r chi.Router) {
				r.Get("/arm", s.wrap(s.arm))
				r.Post("/blur", wrapJSON[BlurRequest](s, s.blur))
				r.Post("/submit", wrapJSON[SubmitRequest](s, s.submit))
			})
		})
	})

	if s.cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return r
}

func (s *Server) limitReached(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
	if err := handler.JSONError(handler.ErrTooManyRequests).Render(w, r); err != nil {
		s.log.ErrorContext(r.Context(), "failed to render rate limit response", logger.Error(err))
	}
}

// wrap adapts a handler without a request body.
func (s *Server) wrap(h handler.HandlerFunc[handler.Context, struct{}]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithErrorHandler[handler.Context, struct{}](handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})),
	)
}

// wrapJSON adapts a handler whose request arrives as DataStar signals or JSON.
func wrapJSON[R any](s *Server, h handler.HandlerFunc[handler.Context, R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](handler.BindSignals(), handler.BindJSON()),
		handler.WithErrorHandler[handler.Context, R](handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})),
	)
}
