package i18n

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Parser decodes a translation document whose top-level keys are language
// codes and whose values are nested key trees.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	SupportsFileExtension(ext string) bool
}

// ParserForFile picks a parser from the file extension.
func ParserForFile(name string) (Parser, error) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(ext) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// splitLanguages checks that every top-level value is a key tree.
func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q holds %T, expected a map", ErrInvalidStructure, lang, val)
		}
		result[lang] = tree
	}
	return result, nil
}
