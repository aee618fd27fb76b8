package site

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alzentdigital/website"
	"github.com/alzentdigital/website/handler"
	"github.com/alzentdigital/website/pkg/cookie"
	"github.com/alzentdigital/website/pkg/formguard"
	"github.com/alzentdigital/website/pkg/i18n"
)

// ArmResponse carries the armed form, including the hidden CSRF and
// honeypot fields.
type ArmResponse struct {
	Form  *formguard.Form `json:"form"`
	State formguard.State `json:"state"`
}

// BlurRequest is sent when a field loses focus.
type BlurRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SubmitRequest carries every field value of the form, security fields
// included.
type SubmitRequest struct {
	Values map[string]string `json:"values"`
}

// LanguageRequest switches the visitor's language.
type LanguageRequest struct {
	Language string `json:"language"`
}

// LanguageResponse reports the language in effect.
type LanguageResponse struct {
	Language string `json:"language"`
}

// guardFor resolves the session and the guard named by the route.
func (s *Server) guardFor(r *http.Request) (*website.Session, *formguard.Guard, error) {
	sess, err := s.session(r)
	if err != nil {
		return nil, nil, err
	}
	g, err := sess.Guard(chi.URLParam(r, "formID"))
	if err != nil {
		return nil, nil, toHTTPError(err)
	}
	return sess, g, nil
}

func (s *Server) arm(ctx handler.Context, _ struct{}) handler.Response {
	sess, g, err := s.guardFor(ctx.Request())
	if err != nil {
		return handler.Fail(err)
	}
	form, err := g.Arm(sess.Context(ctx))
	if err != nil {
		return handler.Fail(toHTTPError(err))
	}
	return handler.Signals(ArmResponse{Form: form, State: g.State()})
}

func (s *Server) blur(ctx handler.Context, req BlurRequest) handler.Response {
	sess, g, err := s.guardFor(ctx.Request())
	if err != nil {
		return handler.Fail(err)
	}
	if _, err := g.Input(req.Field, req.Value); err != nil {
		return handler.Fail(toHTTPError(err))
	}
	view, err := g.Blur(sess.Context(ctx), req.Field)
	if err != nil {
		return handler.Fail(toHTTPError(err))
	}
	return handler.Signals(view)
}

func (s *Server) submit(ctx handler.Context, req SubmitRequest) handler.Response {
	sess, g, err := s.guardFor(ctx.Request())
	if err != nil {
		return handler.Fail(err)
	}
	view, err := g.Submit(sess.Context(ctx), req.Values)
	if err != nil {
		return handler.Fail(toHTTPError(err))
	}
	return handler.Signals(view)
}

func (s *Server) setLanguage(ctx handler.Context, req LanguageRequest) handler.Response {
	sess, err := s.session(ctx.Request())
	if err != nil {
		return handler.Fail(err)
	}
	if i18n.NormalizeLanguage(req.Language, s.translator.SupportedLanguages()) == "" {
		return handler.Fail(handler.ValidationError{"language": {"unsupported language"}})
	}
	lang := sess.SetLanguage(req.Language)
	s.cookies.Set(ctx.ResponseWriter(), s.cfg.LanguageCookie, lang, cookie.WithHTTPOnly(false))
	return handler.Signals(LanguageResponse{Language: lang})
}

// catalogue serves one language's messages for client-side rendering.
func (s *Server) catalogue(ctx handler.Context, _ struct{}) handler.Response {
	lang := chi.URLParam(ctx.Request(), "lang")
	data, err := s.translator.ExportJSON(lang)
	if err != nil {
		if errors.Is(err, i18n.ErrLanguageNotSupported) {
			return handler.Fail(handler.ErrNotFound)
		}
		return handler.Fail(err)
	}
	return handler.JSON(json.RawMessage(data),
		handler.WithoutEnvelope(),
		handler.WithJSONHeader("Cache-Control", "public, max-age=3600"),
	)
}

// toHTTPError maps domain errors onto status codes, keeping the cause.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, website.ErrUnknownForm):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, formguard.ErrUnknownField):
		return errors.Join(handler.ErrBadRequest, err)
	case errors.Is(err, formguard.ErrSubmitInProgress):
		return errors.Join(handler.ErrConflict, err)
	}
	return err
}
