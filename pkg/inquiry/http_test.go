package inquiry_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/inquiry"
)

type processorFunc func(ctx context.Context, p dispatch.Payload) (inquiry.Result, error)

func (f processorFunc) Handle(ctx context.Context, p dispatch.Payload) (inquiry.Result, error) {
	return f(ctx, p)
}

const validBody = `{"formId":"otc","serviceName":"OTC Desk","entityName":"Acme","email":"a@b.co","amount":null,"language":"en","timestamp":"2026-05-01T12:00:00.000Z","formData":{}}`

func postJSON(h http.Handler, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, inquiry.Path, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_Preflight(t *testing.T) {
	t.Parallel()

	h := inquiry.NewHandler(processorFunc(nil), inquiry.Config{}).Router()

	req := httptest.NewRequest(http.MethodOptions, inquiry.Path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, w.Body.String())
}

func TestHandler_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		proc       processorFunc
		wantStatus int
		wantBody   string
	}{
		{
			name: "sent",
			body: validBody,
			proc: func(_ context.Context, p dispatch.Payload) (inquiry.Result, error) {
				if p.FormID != "otc" || p.Amount != nil {
					return inquiry.Result{}, errors.New("unexpected payload")
				}
				return inquiry.Result{NotificationSent: true, ConfirmationSent: true}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"message":"Emails sent successfully","notificationSent":true,"confirmationSent":true}`,
		},
		{
			name: "validation failed",
			body: validBody,
			proc: func(context.Context, dispatch.Payload) (inquiry.Result, error) {
				return inquiry.Result{}, inquiry.ValidationError{inquiry.MsgEmailRequired, inquiry.MsgEntityNameRequired}
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"Validation failed","errors":["Valid email is required","Entity name is required"]}`,
		},
		{
			name: "provider failure",
			body: validBody,
			proc: func(context.Context, dispatch.Payload) (inquiry.Result, error) {
				return inquiry.Result{}, errors.Join(inquiry.ErrNotificationEmail, errors.New("postmark: token xyz rejected"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"Internal server error","message":"inquiry: failed to send notification email"}`,
		},
		{
			name:       "malformed JSON",
			body:       `{"formId":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"Validation failed","errors":["Request body must be a JSON object"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := inquiry.NewHandler(tt.proc, inquiry.Config{}).Router()
			w := postJSON(h, tt.body, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "xyz")
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := inquiry.NewHandler(processorFunc(nil), inquiry.Config{}).Router()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, inquiry.Path, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandler_Signature(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ok := processorFunc(func(context.Context, dispatch.Payload) (inquiry.Result, error) {
		return inquiry.Result{NotificationSent: true, ConfirmationSent: true}, nil
	})
	h := inquiry.NewHandler(ok, inquiry.Config{
		SigningSecret:   "s3cret",
		SignatureMaxAge: 5 * time.Minute,
		AllowOrigin:     "https://alzentdigital.com",
	}, inquiry.WithHandlerClock(func() time.Time { return now })).Router()

	sign := func(secret string, at time.Time) http.Header {
		sig, err := dispatch.Sign(secret, []byte(validBody), at)
		require.NoError(t, err)
		hdr := make(http.Header)
		sig.Apply(hdr)
		return hdr
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		w := postJSON(h, validBody, sign("s3cret", now))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://alzentdigital.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	tests := []struct {
		name   string
		header http.Header
	}{
		{"missing", nil},
		{"wrong secret", sign("other", now)},
		{"expired", sign("s3cret", now.Add(-time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := postJSON(h, validBody, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, w.Body.String())
		})
	}
}
