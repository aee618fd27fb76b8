package inquiry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alzentdigital/website/handler"
	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/logger"
)

// Path is where the endpoint is mounted.
const Path = "/api/send-email"

// Response messages of the endpoint.
const (
	MsgEmailsSent      = "Emails sent successfully"
	MsgValidation      = "Validation failed"
	MsgInternal        = "Internal server error"
	MsgUnauthorized    = "Unauthorized"
	MsgInvalidJSONBody = "Request body must be a JSON object"
)

// Processor handles a decoded payload. *Service implements it.
type Processor interface {
	Handle(ctx context.Context, p dispatch.Payload) (Result, error)
}

// Handler serves the send-email endpoint.
type Handler struct {
	proc Processor
	cfg  Config
	log  *slog.Logger
	now  func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithHandlerClock replaces time.Now for signature age checks.
func WithHandlerClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler returns the HTTP front of proc.
func NewHandler(proc Processor, cfg Config, opts ...HandlerOption) *Handler {
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}
	h := &Handler{proc: proc, cfg: cfg, log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts POST and OPTIONS on Path.
func (h *Handler) Register(r chi.Router) {
	errorHandler := handler.NewErrorHandler(h.log, handler.ErrorHandlerConfig{Body: errorBody})

	r.Group(func(r chi.Router) {
		r.Use(h.cors)
		r.Options(Path, handler.Wrap(handler.HandlerFunc[handler.Context, struct{}](h.preflight)))

		var mw []func(http.Handler) http.Handler
		if h.cfg.SigningSecret != "" {
			mw = append(mw, h.verifySignature)
		}
		r.With(mw...).Post(Path, handler.Wrap(handler.HandlerFunc[handler.Context, dispatch.Payload](h.send),
			handler.WithBinders[handler.Context, dispatch.Payload](handler.BindJSON()),
			handler.WithErrorHandler[handler.Context, dispatch.Payload](errorHandler),
		))
	})
}

// Router returns a standalone router serving only this endpoint.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.cfg.AllowOrigin)
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) preflight(handler.Context, struct{}) handler.Response {
	return handler.EmptyWithStatus(http.StatusOK)
}

func (h *Handler) send(ctx handler.Context, p dispatch.Payload) handler.Response {
	res, err := h.proc.Handle(ctx, p)

	var valErr ValidationError
	switch {
	case err == nil:
		return handler.JSON(dispatch.Response{
			Success:          true,
			Message:          MsgEmailsSent,
			NotificationSent: res.NotificationSent,
			ConfirmationSent: res.ConfirmationSent,
		}, handler.WithoutEnvelope())
	case errors.As(err, &valErr):
		h.log.WarnContext(ctx, "payload rejected",
			logger.FormID(p.FormID),
			slog.Any("errors", []string(valErr)),
		)
		return handler.JSON(dispatch.Response{
			Error:  MsgValidation,
			Errors: valErr,
		}, handler.WithoutEnvelope(), handler.WithJSONStatus(http.StatusBadRequest))
	default:
		h.log.ErrorContext(ctx, "send email failed",
			logger.FormID(p.FormID),
			logger.Error(err),
		)
		return handler.JSON(dispatch.Response{
			Error:   MsgInternal,
			Message: publicMessage(err),
		}, handler.WithoutEnvelope(), handler.WithJSONStatus(http.StatusInternalServerError))
	}
}

// publicMessage names the step that failed without leaking provider details.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotificationEmail):
		return ErrNotificationEmail.Error()
	case errors.Is(err, ErrConfirmationEmail):
		return ErrConfirmationEmail.Error()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return "unexpected error"
	}
}

// errorBody shapes binder failures like the endpoint's own answers.
func errorBody(info handler.ErrorInfo, _ string) any {
	if info.StatusCode < http.StatusInternalServerError {
		return dispatch.Response{Error: MsgValidation, Errors: []string{MsgInvalidJSONBody}}
	}
	return dispatch.Response{Error: MsgInternal, Message: info.Message}
}

// verifySignature rejects POST bodies not signed with the shared secret.
func (h *Handler) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, handler.MaxJSONSize+1))
		if err == nil {
			var sig dispatch.Signature
			if sig, err = dispatch.SignatureFromHeader(r.Header); err == nil {
				err = dispatch.Verify(h.cfg.SigningSecret, body, sig, h.cfg.SignatureMaxAge, h.now())
			}
		}
		if err != nil {
			h.log.WarnContext(r.Context(), "signature rejected",
				logger.Error(err),
				logger.Component("inquiry"),
			)
			resp := handler.JSON(dispatch.Response{Error: MsgUnauthorized},
				handler.WithoutEnvelope(), handler.WithJSONStatus(http.StatusUnauthorized))
			_ = resp.Render(w, r)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
