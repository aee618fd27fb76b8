package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Translator resolves dot-separated keys against per-language catalogues.
//
// Lookup order is always: requested language, default language, the key itself.
// A missing key therefore never yields an empty string.
type Translator struct {
	mu           sync.RWMutex
	translations map[string]map[string]any
	defaultLang  string
	logMissing   bool
	logger       *slog.Logger
	adapter      TranslationAdapter
}

// NewTranslator loads translations through the adapter and returns a ready translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.DiscardHandler),
		adapter:     adapter,
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateTranslations(translations); err != nil {
		return nil, err
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded",
		slog.Any("languages", t.supportedLanguages()),
		slog.String("default", t.defaultLang),
	)
	return t, nil
}

// Reload re-reads the adapter and swaps the catalogue atomically.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateTranslations(translations); err != nil {
		return err
	}

	t.mu.Lock()
	t.translations = translations
	t.mu.Unlock()
	return nil
}

func validateTranslations(trans map[string]map[string]any) error {
	for lang, m := range trans {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if m == nil {
			return fmt.Errorf("%w: %s", ErrNilLanguageCatalogue, lang)
		}
	}
	return nil
}

// DefaultLanguage returns the language used as the lookup fallback.
func (t *Translator) DefaultLanguage() string { return t.defaultLang }

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages returns the sorted language codes that have a catalogue.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

// HasTranslation reports whether lang itself (without fallback) defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookupString(lang, key)
	return ok
}

// lookup walks a nested catalogue using a dot-separated key.
func lookup(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		switch next := val.(type) {
		case map[string]any:
			current = next
		case map[any]any:
			current = make(map[string]any, len(next))
			for k, v := range next {
				if ks, ok := k.(string); ok {
					current[ks] = v
				}
			}
		default:
			return nil, false
		}
	}
	return nil, false
}

// lookupString returns a non-empty string translation for lang and key.
func (t *Translator) lookupString(lang, key string) (string, bool) {
	m, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := lookup(m, key)
	if !ok {
		return "", false
	}
	var s string
	switch v := val.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	case int, int64, float64, bool:
		s = fmt.Sprint(v)
	default:
		return "", false
	}
	return s, s != ""
}

// resolve tries each candidate key in lang, then in the default language.
func (t *Translator) resolve(lang string, keys ...string) (string, bool) {
	for _, l := range []string{lang, t.defaultLang} {
		for _, k := range keys {
			if s, ok := t.lookupString(l, k); ok {
				if l != lang && t.logMissing {
					t.logger.Warn("translation missing, using default language",
						slog.String("lang", lang),
						slog.String("key", keys[0]),
					)
				}
				return s, true
			}
		}
		if lang == t.defaultLang {
			break
		}
	}
	if t.logMissing {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", keys[0]))
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders using key/value pairs from args.
// Unknown placeholders are left untouched; a trailing odd argument is ignored.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// T translates key for lang, substituting %{name} placeholders from args
// given as name/value pairs:
//
//	tr.T("es", "mail.subject.notification", "service", "OTC Desk")
//
// Missing translations fall back to the default language and then to key.
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.resolve(lang, key); ok {
		return substitute(s, args)
	}
	return substitute(key, args)
}

// N translates a pluralized key. The form is chosen from n:
// "zero" then "other" for 0, "one" then "other" for 1, "other" otherwise.
// A "count" argument equal to n is added unless args already carries one.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var candidates []string
	switch n {
	case 0:
		candidates = []string{key + ".zero", key + ".other"}
	case 1:
		candidates = []string{key + ".one", key + ".other"}
	default:
		candidates = []string{key + ".other"}
	}
	candidates = append(candidates, key)

	if !hasArg(args, "count") {
		args = append(args[:len(args):len(args)], "count", strconv.Itoa(n))
	}

	if s, ok := t.resolve(lang, candidates...); ok {
		return substitute(s, args)
	}
	return substitute(key, args)
}

func hasArg(args []string, name string) bool {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == name {
			return true
		}
	}
	return false
}

// Td translates key, returning defaultValue when neither lang nor the
// default language define it.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.resolve(lang, key); ok {
		return substitute(s, args)
	}
	return substitute(defaultValue, args)
}

// Tc translates key using the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc is the context-aware variant of N.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

// ExportJSON serializes the whole catalogue of lang for client-side use.
func (t *Translator) ExportJSON(lang string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	translations, ok := t.translations[lang]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrLanguageNotSupported, lang)
	}
	b, err := json.Marshal(translations)
	if err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return string(b), nil
}

// Catalogue returns a deep copy of every loaded language catalogue.
func (t *Translator) Catalogue() map[string]map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]map[string]any, len(t.translations))
	for lang, m := range t.translations {
		out[lang] = copyTree(m)
	}
	return out
}

func copyTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = copyTree(nested)
			continue
		}
		out[k] = v
	}
	return out
}
