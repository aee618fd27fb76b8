package formguard

import (
	"context"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/ratelimit"
)

// TokenSource issues CSRF tokens. Implemented by *csrf.Store.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Limiter throttles submissions per form id. Implemented by *ratelimit.Limiter.
type Limiter interface {
	Check(ctx context.Context, key string) (*ratelimit.Result, error)
	RecordAttempt(ctx context.Context, key string) error
}

// Localizer resolves user-visible messages. Implemented by *i18n.Translator.
type Localizer interface {
	T(lang, key string, args ...string) string
	N(lang, key string, n int, args ...string) string
}

// Modal is the view holding the card request form.
type Modal interface {
	CloseCardModal(ctx context.Context)
}

// Renderer applies a View to whatever displays the form. It is called when
// the submit control is disabled and again with the final outcome.
type Renderer interface {
	Render(ctx context.Context, form *Form, view View)
}

type noopModal struct{}

func (noopModal) CloseCardModal(context.Context) {}

type noopRenderer struct{}

func (noopRenderer) Render(context.Context, *Form, View) {}

// acceptAll stands in when no dispatcher is configured: every payload is
// reported as delivered.
var acceptAll = dispatch.DispatcherFunc(func(context.Context, dispatch.Payload) (dispatch.Response, error) {
	return dispatch.Response{Success: true}, nil
})

// ModalFunc adapts a function to Modal.
type ModalFunc func(ctx context.Context)

func (f ModalFunc) CloseCardModal(ctx context.Context) { f(ctx) }

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, form *Form, view View)

func (f RendererFunc) Render(ctx context.Context, form *Form, view View) { f(ctx, form, view) }
