package formguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/logger"
	"github.com/alzentdigital/website/pkg/sanitizer"
	"github.com/alzentdigital/website/pkg/statemachine"
	"github.com/alzentdigital/website/pkg/validator"
)

// Translation keys for the messages a Guard shows.
const (
	keySending         = "email.sending"
	keySuccess         = "email.success"
	keyError           = "email.error"
	keyErrorNetwork    = "email.error_network"
	keyErrorValidation = "email.error_validation"
	keyRateLimited     = "forms.rate_limited"
)

// Guard protects one form. It arms the form with CSRF and honeypot fields,
// sanitizes and validates input, and runs submissions through the gates:
// honeypot, rate limit, validation, sanitization, attempt accounting and
// finally dispatch with a single retry on network failures.
//
// The language of user-visible messages is read from the context
// (i18n.SetLocale). A Guard is safe for concurrent use; a submission started
// while another one is in flight fails with ErrSubmitInProgress.
type Guard struct {
	mu   sync.Mutex
	form *Form

	machine    *statemachine.Machine[State, Event]
	tokens     TokenSource
	limiter    Limiter
	validator  *validator.Validator
	localizer  Localizer
	dispatcher dispatch.Dispatcher
	modal      Modal
	renderer   Renderer

	timeout    time.Duration
	retryDelay time.Duration
	maxRetries int
	sleep      func(ctx context.Context, d time.Duration) error
	now        func() time.Time
	log        *slog.Logger
}

// New returns an unarmed guard for form. A form without an id is treated as
// "default".
func New(form *Form, tokens TokenSource, limiter Limiter, opts ...Option) (*Guard, error) {
	switch {
	case form == nil:
		return nil, ErrFormRequired
	case tokens == nil:
		return nil, ErrTokensRequired
	case limiter == nil:
		return nil, ErrLimiterRequired
	}
	if form.ID == "" {
		form.ID = "default"
	}

	g := &Guard{
		form:       form,
		tokens:     tokens,
		limiter:    limiter,
		dispatcher: acceptAll,
		modal:      noopModal{},
		renderer:   noopRenderer{},
		timeout:    DefaultTimeout,
		retryDelay: DefaultRetryDelay,
		maxRetries: DefaultMaxRetries,
		sleep:      sleepContext,
		now:        time.Now,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.localizer == nil {
		tr, err := i18n.NewDefaultTranslator(context.Background())
		if err != nil {
			return nil, fmt.Errorf("formguard: loading built-in messages: %w", err)
		}
		g.localizer = tr
	}
	if g.validator == nil {
		g.validator = validator.New(validator.WithLocalizer(g.localizer))
	}

	m, err := newMachine(g.logTransition)
	if err != nil {
		return nil, err
	}
	g.machine = m
	return g, nil
}

func (g *Guard) logTransition(ctx context.Context, from, to State, event Event) {
	g.log.DebugContext(ctx, "form transition",
		logger.FormID(g.form.ID),
		slog.String("from", string(from)),
		logger.State(string(to)),
		logger.Event(string(event)),
	)
}

// ID returns the guarded form's id.
func (g *Guard) ID() string { return g.form.ID }

// State returns the current lifecycle state.
func (g *Guard) State() State { return g.machine.Current() }

// Form returns a snapshot of the form.
func (g *Guard) Form() *Form {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.form.Clone()
}

// Arm injects the hidden CSRF field and the honeypot field. Arming again
// refreshes the token without duplicating fields.
func (g *Guard) Arm(ctx context.Context) (*Form, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.arm(ctx); err != nil {
		return nil, err
	}
	return g.form.Clone(), nil
}

func (g *Guard) arm(ctx context.Context) error {
	if g.machine.Is(StateSubmitting) {
		return ErrSubmitInProgress
	}

	token, err := g.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("formguard: issuing csrf token: %w", err)
	}
	g.form.upsert(Field{Name: CSRFField, Type: validator.TypeHidden, Value: token}, false)
	g.form.upsert(Field{
		Name:         HoneypotField,
		Type:         validator.TypeText,
		Hidden:       true,
		TabIndex:     -1,
		Autocomplete: "off",
	}, true)

	if err := g.machine.Fire(ctx, EventArm, nil); err != nil {
		if statemachine.IsNoTransition(err) {
			return ErrSubmitInProgress
		}
		return err
	}
	return nil
}

// Input stores a sanitized value for the named field and returns the field.
func (g *Guard) Input(name, value string) (Field, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fld := g.form.Field(name)
	if fld == nil {
		return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fld.Value = sanitizer.SanitizeInput(value)
	return *fld, nil
}

// Blur validates the named field's current value.
func (g *Guard) Blur(ctx context.Context, name string) (FieldView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fld := g.form.Field(name)
	if fld == nil {
		return FieldView{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	res := g.validator.ValidateField(i18n.GetLocale(ctx), fld.validatorField())
	return FieldView{
		Field:    fld.Name,
		Value:    fld.Value,
		Valid:    res.Valid,
		ErrorKey: res.ErrorKey,
		Message:  res.Message,
	}, nil
}

// Submit applies values to the form and runs the submission gates. Gate
// rejections and dispatch failures are reported through the View; the error
// is reserved for ErrSubmitInProgress and storage failures.
func (g *Guard) Submit(ctx context.Context, values map[string]string) (View, error) {
	lang := i18n.GetLocale(ctx)

	g.mu.Lock()
	payload, view, proceed, err := g.gate(ctx, lang, values)
	form := g.form.Clone()
	g.mu.Unlock()

	if err != nil {
		return view, err
	}
	g.renderer.Render(ctx, form, view)
	if !proceed {
		return view, nil
	}

	view = g.deliver(ctx, lang, payload)
	if view.CloseModal {
		g.modal.CloseCardModal(ctx)
	}
	g.renderer.Render(ctx, g.Form(), view)
	return view, nil
}

// gate runs everything up to the dispatch call. It must be called with g.mu held.
func (g *Guard) gate(ctx context.Context, lang string, values map[string]string) (dispatch.Payload, View, bool, error) {
	id := g.form.ID

	if g.machine.Is(StateSubmitting) {
		return dispatch.Payload{}, g.view(), false, ErrSubmitInProgress
	}
	if !g.machine.Is(StateArmed) {
		if err := g.arm(ctx); err != nil {
			return dispatch.Payload{}, g.view(), false, err
		}
	}
	if unknown := g.form.Set(values); len(unknown) > 0 {
		g.log.DebugContext(ctx, "ignoring unknown form values", logger.FormID(id), slog.Any("fields", unknown))
	}
	if err := g.machine.Fire(ctx, EventSubmit, nil); err != nil {
		if statemachine.IsNoTransition(err) {
			return dispatch.Payload{}, g.view(), false, ErrSubmitInProgress
		}
		return dispatch.Payload{}, g.view(), false, err
	}

	if g.form.Value(HoneypotField) != "" {
		g.log.WarnContext(ctx, "bot detected via honeypot", logger.FormID(id))
		return dispatch.Payload{}, g.abort(ctx, View{Outcome: OutcomeBotDetected, Silent: true}), false, nil
	}

	res, err := g.limiter.Check(ctx, id)
	if err != nil {
		g.abort(ctx, View{})
		return dispatch.Payload{}, g.view(), false, fmt.Errorf("formguard: rate limit check: %w", err)
	}
	if !res.Allowed {
		g.log.InfoContext(ctx, "submission rate limited", logger.FormID(id), slog.Int("retry_after_s", res.RemainingSeconds()))
		return dispatch.Payload{}, g.abort(ctx, View{
			Outcome:     OutcomeRateLimited,
			Message:     g.localizer.N(lang, keyRateLimited, res.RemainingMinutes()),
			MessageKind: MessageError,
			RetryAfter:  res.RemainingSeconds(),
		}), false, nil
	}

	if result := g.validator.ValidateForm(lang, g.form.validatorFields()); !result.Valid {
		return dispatch.Payload{}, g.abort(ctx, View{
			Outcome:     OutcomeValidationFailed,
			FieldErrors: result.Errors,
		}), false, nil
	}

	for i := range g.form.Fields {
		if g.form.Fields[i].visible() {
			g.form.Fields[i].Value = sanitizer.SanitizeInput(g.form.Fields[i].Value)
		}
	}

	if err := g.limiter.RecordAttempt(ctx, id); err != nil {
		g.abort(ctx, View{})
		return dispatch.Payload{}, g.view(), false, fmt.Errorf("formguard: recording attempt: %w", err)
	}

	g.form.Submit.disable(g.localizer.T(lang, keySending))
	payload := BuildPayload(g.form, lang, g.now())

	view := g.view()
	view.MessageKind = MessageInfo
	return payload, view, true, nil
}

// abort returns a submitting form to armed and fills in the view state.
func (g *Guard) abort(ctx context.Context, v View) View {
	if err := g.machine.Fire(ctx, EventAbort, nil); err != nil {
		g.log.ErrorContext(ctx, "abort transition failed", logger.FormID(g.form.ID), logger.Error(err))
	}
	v.State = g.machine.Current()
	v.Submit = SubmitView{Disabled: g.form.Submit.Disabled, Label: g.form.Submit.Label}
	return v
}

func (g *Guard) view() View {
	return View{
		State:  g.machine.Current(),
		Submit: SubmitView{Disabled: g.form.Submit.Disabled, Label: g.form.Submit.Label},
	}
}

// deliver sends payload, retrying network failures after a fixed pause
// without touching the gates again.
func (g *Guard) deliver(ctx context.Context, lang string, payload dispatch.Payload) View {
	var (
		err      error
		attempts int
	)
	for {
		attempts++
		err = g.dispatchOnce(ctx, payload)
		if err == nil || !dispatch.IsRetryable(err) || attempts > g.maxRetries {
			break
		}

		g.log.InfoContext(ctx, "dispatch failed, retrying",
			logger.FormID(payload.FormID),
			logger.RetryCount(attempts),
			logger.Error(err),
		)
		if serr := g.sleep(ctx, g.retryDelay); serr != nil {
			break
		}
		if ferr := g.machine.Fire(ctx, EventRetry, attempts); ferr != nil {
			g.log.ErrorContext(ctx, "retry transition failed", logger.FormID(payload.FormID), logger.Error(ferr))
			break
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err == nil {
		return g.succeed(ctx, lang, attempts)
	}
	return g.fail(ctx, lang, attempts, err)
}

func (g *Guard) dispatchOnce(ctx context.Context, payload dispatch.Payload) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.dispatcher.Dispatch(ctx, payload)
	switch {
	case err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !dispatch.IsRetryable(err):
		return fmt.Errorf("%w: %w", dispatch.ErrTimeout, err)
	case err != nil:
		return err
	case !resp.Success:
		return fmt.Errorf("%w: %s", dispatch.ErrServer, resp.Error)
	}
	return nil
}

func (g *Guard) succeed(ctx context.Context, lang string, attempts int) View {
	if err := g.machine.Fire(ctx, EventSucceed, nil); err != nil {
		g.log.ErrorContext(ctx, "succeed transition failed", logger.FormID(g.form.ID), logger.Error(err))
	}
	g.form.Reset()
	g.form.Submit.restore()

	g.log.InfoContext(ctx, "form submitted", logger.FormID(g.form.ID), slog.Int("attempts", attempts))

	v := g.view()
	v.Outcome = OutcomeSent
	v.Message = g.localizer.T(lang, keySuccess)
	v.MessageKind = MessageSuccess
	v.Reset = true
	v.CloseModal = g.form.ID == CardRequestFormID
	v.Attempts = attempts
	return v
}

func (g *Guard) fail(ctx context.Context, lang string, attempts int, err error) View {
	if ferr := g.machine.Fire(ctx, EventFail, nil); ferr != nil {
		g.log.ErrorContext(ctx, "fail transition failed", logger.FormID(g.form.ID), logger.Error(ferr))
	}
	g.form.Submit.restore()

	v := g.view()
	v.MessageKind = MessageError
	v.Attempts = attempts
	switch dispatch.Classify(err) {
	case dispatch.CategoryNetwork:
		v.Outcome = OutcomeNetworkError
		v.Message = g.localizer.T(lang, keyErrorNetwork)
	case dispatch.CategoryValidation:
		v.Outcome = OutcomeRejected
		v.Message = g.localizer.T(lang, keyErrorValidation)
	default:
		v.Outcome = OutcomeServerError
		v.Message = g.localizer.T(lang, keyError)
	}

	g.log.WarnContext(ctx, "form submission failed",
		logger.FormID(g.form.ID),
		slog.String("outcome", string(v.Outcome)),
		slog.Int("attempts", attempts),
		logger.Error(err),
	)
	return v
}
