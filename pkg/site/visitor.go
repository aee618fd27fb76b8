package site

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/alzentdigital/website"
	"github.com/alzentdigital/website/pkg/cookie"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/kvstore"
	"github.com/alzentdigital/website/pkg/logger"
)

type visitorKey struct{}

// WithVisitorID stores the visitor id in ctx.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorID returns the id stored by WithVisitorID, or "".
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// VisitorLogExtractor adds "visitor_id" to log records.
func VisitorLogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := VisitorID(ctx); id != "" {
			return logger.VisitorID(id), true
		}
		return slog.Attr{}, false
	}
}

// identify resolves the visitor from the signed cookie and issues a new id
// when the cookie is missing, forged or not a UUID.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.cookies.GetSigned(r, s.cfg.VisitorCookie)
		if err == nil {
			if _, perr := uuid.Parse(id); perr != nil {
				err = perr
			}
		}
		if err != nil {
			if !errors.Is(err, cookie.ErrCookieNotFound) {
				s.log.WarnContext(r.Context(), "discarding visitor cookie", logger.Component("site"), logger.Error(err))
			}
			id = uuid.NewString()
			s.cookies.SetSigned(w, s.cfg.VisitorCookie, id)
		}
		next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), id)))
	})
}

// visitorPrefix namespaces a visitor's durable keys.
func visitorPrefix(id string) string {
	return "visitor:" + id + ":"
}

// session returns the visitor's session with its language synced to the
// language negotiated for r.
func (s *Server) session(r *http.Request) (*website.Session, error) {
	id := VisitorID(r.Context())
	sess, err := s.sessions.GetOrCreate(id, func() (*website.Session, error) {
		return website.NewSession(kvstore.WithPrefix(s.store, visitorPrefix(id)), s.translator, s.sessionOpts...)
	})
	if err != nil {
		return nil, err
	}
	sess.SetLanguage(i18n.GetLocale(r.Context()))
	return sess, nil
}
