package i18n

import (
	"net/http"
)

// LangExtractor derives a language code from a request; "" means undecided.
type LangExtractor func(r *http.Request) string

type extractorConfig struct {
	cookieName     string
	queryParamName string
	supported      []string
}

// ExtractorOption configures DefaultLangExtractor.
type ExtractorOption func(*extractorConfig)

// WithCookieName sets the cookie holding the visitor's chosen language.
func WithCookieName(name string) ExtractorOption {
	return func(c *extractorConfig) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter checked for a language override.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *extractorConfig) {
		if name != "" {
			c.queryParamName = name
		}
	}
}

// WithSupportedLanguages restricts accepted codes. Defaults to SupportedLanguages.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *extractorConfig) {
		if len(langs) > 0 {
			c.supported = langs
		}
	}
}

// DefaultLangExtractor checks, in order: the language cookie (default
// "alzent_lang"), the "lang" query parameter, the Language header and
// finally Accept-Language. Unsupported values are skipped.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &extractorConfig{
		cookieName:     "alzent_lang",
		queryParamName: "lang",
		supported:      SupportedLanguages,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(r *http.Request) string {
		if c, err := r.Cookie(cfg.cookieName); err == nil {
			if lang := NormalizeLanguage(c.Value, cfg.supported); lang != "" {
				return lang
			}
		}
		if lang := NormalizeLanguage(r.URL.Query().Get(cfg.queryParamName), cfg.supported); lang != "" {
			return lang
		}
		if lang := NormalizeLanguage(r.Header.Get("Language"), cfg.supported); lang != "" {
			return lang
		}
		return ParseAcceptLanguage(r.Header.Get("Accept-Language"), cfg.supported, "")
	}
}
