package i18n_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/i18n"
)

func newMapTranslator(t *testing.T, data map[string]map[string]any, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: data}, opts...)
	require.NoError(t, err)
	return tr
}

func testCatalogue() map[string]map[string]any {
	return map[string]map[string]any{
		"en": {
			"hello":   "Hello",
			"welcome": "Welcome, %{name}!",
			"empty":   "",
			"items": map[string]any{
				"zero":  "No items",
				"one":   "%{count} item",
				"other": "%{count} items",
			},
			"nested": map[string]any{"deep": map[string]any{"key": "Deep value"}},
		},
		"es": {
			"hello": "Hola",
			"items": map[string]any{
				"other": "%{count} elementos",
			},
		},
	}
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("nil adapter", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
	})

	t.Run("empty language code", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{
			Data: map[string]map[string]any{"": {"a": "b"}},
		})
		assert.ErrorIs(t, err, i18n.ErrEmptyLanguageCode)
	})

	t.Run("nil catalogue", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{
			Data: map[string]map[string]any{"en": nil},
		})
		assert.ErrorIs(t, err, i18n.ErrNilLanguageCatalogue)
	})

	t.Run("supported languages sorted", func(t *testing.T) {
		t.Parallel()
		tr := newMapTranslator(t, testCatalogue())
		assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())
		assert.Equal(t, "en", tr.DefaultLanguage())
	})
}

func TestTranslatorT(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	tests := []struct {
		name string
		lang string
		key  string
		args []string
		want string
	}{
		{"direct", "es", "hello", nil, "Hola"},
		{"placeholder", "en", "welcome", []string{"name", "Ana"}, "Welcome, Ana!"},
		{"unknown placeholder kept", "en", "welcome", []string{"other", "x"}, "Welcome, %{name}!"},
		{"odd args ignored", "en", "welcome", []string{"name"}, "Welcome, %{name}!"},
		{"nested", "en", "nested.deep.key", nil, "Deep value"},
		{"missing key falls back to default language", "es", "welcome", []string{"name", "Ana"}, "Welcome, Ana!"},
		{"unsupported language falls back", "fr", "hello", nil, "Hello"},
		{"missing everywhere returns key", "es", "nope.key", nil, "nope.key"},
		{"empty value treated as missing", "en", "empty", nil, "empty"},
		{"map value returns key", "en", "items", nil, "items"},
		{"path through a leaf", "en", "hello.world", nil, "hello.world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tr.T(tt.lang, tt.key, tt.args...))
		})
	}
}

func TestTranslatorN(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	assert.Equal(t, "No items", tr.N("en", "items", 0))
	assert.Equal(t, "1 item", tr.N("en", "items", 1))
	assert.Equal(t, "7 items", tr.N("en", "items", 7))

	// Spanish only defines "other", which covers every count before falling back.
	assert.Equal(t, "1 elementos", tr.N("es", "items", 1))
	assert.Equal(t, "3 elementos", tr.N("es", "items", 3))

	assert.Equal(t, "42 items", tr.N("en", "items", 2, "count", "42"))
	assert.Equal(t, "missing", tr.N("en", "missing", 2))
}

func TestTranslatorTd(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	assert.Equal(t, "Hola", tr.Td("es", "hello", "fallback"))
	assert.Equal(t, "Hi Bob", tr.Td("es", "missing", "Hi %{name}", "name", "Bob"))
}

func TestTranslatorContext(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	ctx := i18n.SetLocale(context.Background(), "es")
	assert.Equal(t, "Hola", tr.Tc(ctx, "hello"))
	assert.Equal(t, "2 elementos", tr.Nc(ctx, "items", 2))
	assert.Equal(t, "Hello", tr.Tc(context.Background(), "hello"))
}

func TestTranslatorHasTranslation(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	assert.True(t, tr.HasTranslation("en", "welcome"))
	assert.False(t, tr.HasTranslation("es", "welcome"))
	assert.False(t, tr.HasTranslation("fr", "hello"))
	assert.False(t, tr.HasTranslation("en", "empty"))
}

func TestTranslatorExportJSON(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	out, err := tr.ExportJSON("es")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Hola", decoded["hello"])

	_, err = tr.ExportJSON("fr")
	assert.ErrorIs(t, err, i18n.ErrLanguageNotSupported)
}

func TestTranslatorCatalogueIsCopy(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	cat := tr.Catalogue()
	cat["en"]["hello"] = "changed"
	cat["en"]["nested"].(map[string]any)["deep"] = "changed"

	assert.Equal(t, "Hello", tr.T("en", "hello"))
	assert.Equal(t, "Deep value", tr.T("en", "nested.deep.key"))
}

func TestTranslatorWithDefaultLanguage(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue(), i18n.WithDefaultLanguage("es"))

	assert.Equal(t, "Hola", tr.T("fr", "hello"))
	assert.Equal(t, "welcome", tr.T("fr", "welcome"))
}

func TestTranslatorReload(t *testing.T) {
	t.Parallel()
	adapter := &i18n.MapAdapter{Data: map[string]map[string]any{"en": {"a": "one"}}}
	tr, err := i18n.NewTranslator(context.Background(), adapter)
	require.NoError(t, err)
	assert.Equal(t, "one", tr.T("en", "a"))

	adapter.Data = map[string]map[string]any{"en": {"a": "two"}}
	require.NoError(t, tr.Reload(context.Background()))
	assert.Equal(t, "two", tr.T("en", "a"))
}

func TestTranslatorConcurrentAccess(t *testing.T) {
	t.Parallel()
	tr := newMapTranslator(t, testCatalogue())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "Hola", tr.T("es", "hello"))
			assert.Equal(t, "5 items", tr.N("en", "items", 5))
		}()
	}
	wg.Wait()
}
