package dispatch_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/dispatch"
)

func samplePayload() dispatch.Payload {
	amount := "2500"
	return dispatch.Payload{
		FormID:      "card-request",
		ServiceName: "ALZENT Card Request",
		EntityName:  "Acme Corp",
		Email:       "user@acme.com",
		Amount:      &amount,
		Language:    "en",
		Timestamp:   "2026-01-02T03:04:05.000Z",
		FormData:    map[string]string{"applicant_name": "Acme Corp", "email": "user@acme.com"},
	}
}

func TestClientDispatch(t *testing.T) {
	t.Parallel()

	var received dispatch.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"success":true,"message":"Emails sent successfully","notificationSent":true,"confirmationSent":true}`))
	}))
	defer srv.Close()

	c, err := dispatch.NewClient(srv.URL)
	require.NoError(t, err)

	resp, err := c.Dispatch(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.NotificationSent)
	assert.Equal(t, "Emails sent successfully", resp.Message)
	assert.Equal(t, samplePayload(), received)
}

func TestClientDispatchClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		want     error
		category dispatch.Category
	}{
		{"bad request", http.StatusBadRequest, `{"success":false,"error":"Validation failed","errors":["formId is required"]}`, dispatch.ErrValidation, dispatch.CategoryValidation},
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"Internal server error"}`, dispatch.ErrServer, dispatch.CategoryServer},
		{"malformed success body", http.StatusOK, `not json`, dispatch.ErrServer, dispatch.CategoryServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c, err := dispatch.NewClient(srv.URL)
			require.NoError(t, err)

			_, err = c.Dispatch(context.Background(), samplePayload())
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.category, dispatch.Classify(err))
			assert.False(t, dispatch.IsRetryable(err))
		})
	}
}

func TestClientDispatchValidationErrorsDecoded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"error":"Validation failed","errors":["Valid email is required"]}`)
	}))
	defer srv.Close()

	c, err := dispatch.NewClient(srv.URL)
	require.NoError(t, err)

	resp, err := c.Dispatch(context.Background(), samplePayload())
	require.ErrorIs(t, err, dispatch.ErrValidation)
	assert.Equal(t, []string{"Valid email is required"}, resp.Errors)
}

func TestClientDispatchNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := dispatch.NewClient(url)
	require.NoError(t, err)

	_, err = c.Dispatch(context.Background(), samplePayload())
	require.ErrorIs(t, err, dispatch.ErrNetwork)
	assert.True(t, dispatch.IsRetryable(err))
}

func TestClientDispatchTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := dispatch.NewClient(srv.URL, dispatch.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Dispatch(context.Background(), samplePayload())
	require.ErrorIs(t, err, dispatch.ErrTimeout)
	assert.Equal(t, dispatch.CategoryNetwork, dispatch.Classify(err))
}

func TestClientSigning(t *testing.T) {
	t.Parallel()

	const secret = "s3cret"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		sig, err := dispatch.SignatureFromHeader(r.Header)
		require.NoError(t, err)
		assert.NoError(t, dispatch.Verify(secret, body, sig, time.Minute, time.Now()))
		assert.NotEmpty(t, sig.ID)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c, err := dispatch.NewClient(srv.URL, dispatch.WithSigningSecret(secret))
	require.NoError(t, err)
	_, err = c.Dispatch(context.Background(), samplePayload())
	require.NoError(t, err)
}

func TestClientCircuitBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cb := dispatch.NewCircuitBreaker(2, time.Minute)
	c, err := dispatch.NewClient(srv.URL, dispatch.WithCircuitBreaker(cb))
	require.NoError(t, err)

	for range 2 {
		_, err = c.Dispatch(context.Background(), samplePayload())
		require.ErrorIs(t, err, dispatch.ErrServer)
	}
	_, err = c.Dispatch(context.Background(), samplePayload())
	require.ErrorIs(t, err, dispatch.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, dispatch.CategoryServer, dispatch.Classify(err))
}

func TestNewClientRejectsBadEndpoint(t *testing.T) {
	t.Parallel()

	for _, endpoint := range []string{"", "ftp://example.com", "http://", "://bad"} {
		_, err := dispatch.NewClient(endpoint)
		assert.ErrorIs(t, err, dispatch.ErrInvalidEndpoint, endpoint)
	}
}
