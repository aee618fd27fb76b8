package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/cookie"
)

var (
	secretA = strings.Repeat("a", 32)
	secretB = strings.Repeat("b", 32)
)

// roundTrip copies the cookies written to rec onto a new request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{"no secrets", nil, cookie.ErrNoSecret},
		{"only empty secrets", []string{"", ""}, cookie.ErrNoSecret},
		{"short secret", []string{"short"}, cookie.ErrSecretTooShort},
		{"valid", []string{secretA}, nil},
		{"empty entries dropped", []string{"", secretA}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := cookie.New(tt.secrets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestManager_Defaults(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA}, cookie.WithSecure(true))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Set(rec, "alzent_lang", "es", cookie.WithMaxAge(60))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "es", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 60, c.MaxAge)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	v, err := m.Get(roundTrip(rec), "alzent_lang")
	require.NoError(t, err)
	assert.Equal(t, "es", v)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "alzent_lang")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "alzent_vid", "visitor-1")

	raw := rec.Result().Cookies()[0].Value
	assert.NotContains(t, raw, "visitor-1")

	v, err := m.GetSigned(roundTrip(rec), "alzent_vid")
	require.NoError(t, err)
	assert.Equal(t, "visitor-1", v)
}

func TestManager_GetSignedRejectsTampering(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "alzent_vid", "visitor-1")
	raw := rec.Result().Cookies()[0].Value
	_, sig, _ := strings.Cut(raw, ".")

	forged := "dmlzaXRvci0y." + sig // "visitor-2" with visitor-1's tag

	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{"no separator", "abc", cookie.ErrInvalidFormat},
		{"bad base64", "!!!." + sig, cookie.ErrInvalidFormat},
		{"swapped value", forged, cookie.ErrInvalidSignature},
		{"truncated signature", raw[:len(raw)-2], cookie.ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "alzent_vid", Value: tt.value})
			_, err := m.GetSigned(req, "alzent_vid")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManager_SecretRotation(t *testing.T) {
	t.Parallel()
	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)
	fresh, err := cookie.New([]string{secretB})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	old.SetSigned(rec, "alzent_vid", "visitor-1")

	v, err := rotated.GetSigned(roundTrip(rec), "alzent_vid")
	require.NoError(t, err)
	assert.Equal(t, "visitor-1", v)

	_, err = fresh.GetSigned(roundTrip(rec), "alzent_vid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA}, cookie.WithDomain("alzentdigital.com"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Delete(rec, "alzent_vid")

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "alzent_vid", c.Name)
	assert.Equal(t, -1, c.MaxAge)
	assert.Equal(t, "alzentdigital.com", c.Domain)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	_, err := cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets: " " + secretB + " , " + secretA,
		MaxAge:  time.Hour,
		Secure:  true,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "alzent_vid", "v")
	c := rec.Result().Cookies()[0]
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.Secure)
}
