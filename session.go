package website

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/alzentdigital/website/pkg/csrf"
	"github.com/alzentdigital/website/pkg/formguard"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/kvstore"
	"github.com/alzentdigital/website/pkg/logger"
	"github.com/alzentdigital/website/pkg/ratelimit"
)

// Session is the form state of one visitor. It is safe for concurrent use.
type Session struct {
	store      kvstore.Store
	tokens     *csrf.Store
	limiter    *ratelimit.Limiter
	translator *i18n.Translator
	forms      map[string]*formguard.Form
	guardOpts  []formguard.Option
	log        *slog.Logger

	mu     sync.Mutex
	lang   string
	guards map[string]*formguard.Guard
}

type sessionConfig struct {
	lang        string
	forms       []*formguard.Form
	guardOpts   []formguard.Option
	csrfOpts    []csrf.Option
	limiterOpts []ratelimit.Option
	log         *slog.Logger
}

// Option configures a Session.
type Option func(*sessionConfig)

// WithLanguage sets the initial language. Unsupported codes fall back to
// the translator's default language.
func WithLanguage(lang string) Option {
	return func(c *sessionConfig) { c.lang = lang }
}

// WithForms replaces DefaultForms. Each form is cloned before use.
func WithForms(forms ...*formguard.Form) Option {
	return func(c *sessionConfig) { c.forms = forms }
}

// WithGuardOptions are passed to every guard the session creates.
func WithGuardOptions(opts ...formguard.Option) Option {
	return func(c *sessionConfig) { c.guardOpts = append(c.guardOpts, opts...) }
}

// WithCSRFOptions are passed to the session's CSRF token store.
func WithCSRFOptions(opts ...csrf.Option) Option {
	return func(c *sessionConfig) { c.csrfOpts = append(c.csrfOpts, opts...) }
}

// WithLimiterOptions are passed to the session's form rate limiter.
func WithLimiterOptions(opts ...ratelimit.Option) Option {
	return func(c *sessionConfig) { c.limiterOpts = append(c.limiterOpts, opts...) }
}

// WithLogger sets the logger shared by the session and its guards.
func WithLogger(l *slog.Logger) Option {
	return func(c *sessionConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// NewSession builds a session over store. A nil store is replaced by an
// in-memory one and a nil translator by the built-in catalogue.
func NewSession(store kvstore.Store, tr *i18n.Translator, opts ...Option) (*Session, error) {
	cfg := sessionConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.forms == nil {
		cfg.forms = DefaultForms()
	}

	if store == nil {
		store = kvstore.NewMemory()
	}
	if tr == nil {
		var err error
		if tr, err = i18n.NewDefaultTranslator(context.Background()); err != nil {
			return nil, fmt.Errorf("website: loading translations: %w", err)
		}
	}

	limiter, err := ratelimit.New(store, append([]ratelimit.Option{ratelimit.WithLogger(cfg.log)}, cfg.limiterOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("website: creating rate limiter: %w", err)
	}

	s := &Session{
		store:      store,
		tokens:     csrf.New(store, cfg.csrfOpts...),
		limiter:    limiter,
		translator: tr,
		forms:      make(map[string]*formguard.Form, len(cfg.forms)),
		guards:     make(map[string]*formguard.Guard, len(cfg.forms)),
		log:        cfg.log,
	}
	for _, f := range cfg.forms {
		s.forms[f.ID] = f.Clone()
	}
	s.guardOpts = append([]formguard.Option{
		formguard.WithLocalizer(tr),
		formguard.WithLogger(cfg.log),
	}, cfg.guardOpts...)
	s.SetLanguage(cfg.lang)
	return s, nil
}

// Language returns the visitor's current language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage switches the visitor's language and returns the code in
// effect, which is the default language when lang is not supported.
func (s *Session) SetLanguage(lang string) string {
	resolved := i18n.NormalizeLanguage(lang, s.translator.SupportedLanguages())
	if resolved == "" {
		resolved = s.translator.DefaultLanguage()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if resolved != s.lang && s.lang != "" {
		s.log.Debug("language changed", slog.String("from", s.lang), logger.Language(resolved))
	}
	s.lang = resolved
	return resolved
}

// Context returns ctx carrying the session language for the guards.
func (s *Session) Context(ctx context.Context) context.Context {
	return i18n.SetLocale(ctx, s.Language())
}

// T translates key in the session language.
func (s *Session) T(key string, args ...string) string {
	return s.translator.T(s.Language(), key, args...)
}

func (s *Session) Store() kvstore.Store         { return s.store }
func (s *Session) Tokens() *csrf.Store          { return s.tokens }
func (s *Session) Limiter() *ratelimit.Limiter  { return s.limiter }
func (s *Session) Translator() *i18n.Translator { return s.translator }

// FormIDs returns the ids of the forms this session can guard, sorted.
func (s *Session) FormIDs() []string {
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Guard returns the guard for formID, creating it on first use. The same
// guard is returned for the lifetime of the session, so its state machine
// spans requests.
func (s *Session) Guard(formID string) (*formguard.Guard, error) {
	def, ok := s.forms[formID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownForm, formID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.guards[formID]; ok {
		return g, nil
	}
	g, err := formguard.New(def.Clone(), s.tokens, s.limiter, s.guardOpts...)
	if err != nil {
		return nil, fmt.Errorf("website: creating guard for %s: %w", formID, err)
	}
	s.guards[formID] = g
	return g, nil
}
