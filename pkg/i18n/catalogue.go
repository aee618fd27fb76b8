package i18n

import (
	"context"
	"embed"
	"io/fs"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Locales exposes the built-in catalogue files (one YAML file per language).
func Locales() fs.FS {
	sub, err := fs.Sub(localesFS, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewDefaultTranslator builds a translator over the built-in catalogue.
func NewDefaultTranslator(ctx context.Context, opts ...Option) (*Translator, error) {
	return NewTranslator(ctx, NewFSAdapter(Locales(), "."), opts...)
}
