package secheaders

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Header names set by the middleware.
const (
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderPermissionsPolicy  = "Permissions-Policy"
	HeaderHSTS               = "Strict-Transport-Security"
	HeaderCSP                = "Content-Security-Policy"
)

// CSP lists the sources per directive. Empty directives are omitted.
type CSP struct {
	DefaultSrc     []string
	ScriptSrc      []string
	StyleSrc       []string
	FontSrc        []string
	ImgSrc         []string
	ConnectSrc     []string
	FrameAncestors []string
	BaseURI        []string
	FormAction     []string
}

// String renders the policy in directive order, each terminated by a semicolon.
func (c CSP) String() string {
	directives := []struct {
		name    string
		sources []string
	}{
		{"default-src", c.DefaultSrc},
		{"script-src", c.ScriptSrc},
		{"style-src", c.StyleSrc},
		{"font-src", c.FontSrc},
		{"img-src", c.ImgSrc},
		{"connect-src", c.ConnectSrc},
		{"frame-ancestors", c.FrameAncestors},
		{"base-uri", c.BaseURI},
		{"form-action", c.FormAction},
	}

	var b strings.Builder
	for _, d := range directives {
		if len(d.sources) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.name)
		b.WriteByte(' ')
		b.WriteString(strings.Join(d.sources, " "))
		b.WriteByte(';')
	}
	return b.String()
}

// HSTS configures Strict-Transport-Security. A zero MaxAge disables the header.
type HSTS struct {
	MaxAge            int
	IncludeSubDomains bool
	Preload           bool
}

func (h HSTS) String() string {
	if h.MaxAge <= 0 {
		return ""
	}
	v := fmt.Sprintf("max-age=%d", h.MaxAge)
	if h.IncludeSubDomains {
		v += "; includeSubDomains"
	}
	if h.Preload {
		v += "; preload"
	}
	return v
}

// Config holds every header value. Empty values are not sent.
type Config struct {
	FrameOptions      string
	NoSniff           bool
	ReferrerPolicy    string
	PermissionsPolicy string
	HSTS              HSTS
	CSP               CSP
}

// Default returns the headers the site is served with.
func Default() Config {
	return Config{
		FrameOptions:      "DENY",
		NoSniff:           true,
		ReferrerPolicy:    "strict-origin-when-cross-origin",
		PermissionsPolicy: "geolocation=(), microphone=(), camera=()",
		HSTS:              HSTS{MaxAge: 31536000, IncludeSubDomains: true, Preload: true},
		CSP: CSP{
			DefaultSrc:     []string{"'self'"},
			ScriptSrc:      []string{"'self'", "'unsafe-inline'", "'unsafe-eval'", "https://cdn.tailwindcss.com"},
			StyleSrc:       []string{"'self'", "'unsafe-inline'", "https://fonts.googleapis.com"},
			FontSrc:        []string{"'self'", "https://fonts.gstatic.com", "data:"},
			ImgSrc:         []string{"'self'", "data:", "https:"},
			ConnectSrc:     []string{"'self'", "https://fonts.googleapis.com", "https://fonts.gstatic.com"},
			FrameAncestors: []string{"'none'"},
			BaseURI:        []string{"'self'"},
			FormAction:     []string{"'self'"},
		},
	}
}

// Development relaxes Default for local work: no HSTS and same-origin framing.
func Development() Config {
	cfg := Default()
	cfg.HSTS = HSTS{}
	cfg.FrameOptions = "SAMEORIGIN"
	cfg.CSP.FrameAncestors = []string{"'self'"}
	return cfg
}

// Headers returns the header set described by cfg.
func (cfg Config) Headers() http.Header {
	h := make(http.Header, 6)
	set := func(k, v string) {
		if v != "" {
			h.Set(k, v)
		}
	}
	set(HeaderFrameOptions, cfg.FrameOptions)
	if cfg.NoSniff {
		h.Set(HeaderContentTypeOptions, "nosniff")
	}
	set(HeaderReferrerPolicy, cfg.ReferrerPolicy)
	set(HeaderPermissionsPolicy, cfg.PermissionsPolicy)
	set(HeaderHSTS, cfg.HSTS.String())
	set(HeaderCSP, cfg.CSP.String())
	return h
}

// Middleware sets the headers of cfg on every response before the wrapped
// handler runs, so handlers may still override them.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	headers := cfg.Headers()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dst := w.Header()
			for k, v := range headers {
				dst[k] = slices.Clone(v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
