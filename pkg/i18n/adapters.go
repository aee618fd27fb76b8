package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// TranslationAdapter loads catalogues keyed by language code.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves an in-memory catalogue. Mostly useful in tests.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return map[string]map[string]any{}, nil
	}
	return a.Data, nil
}

// FileAdapter loads a single file from the OS filesystem.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter returns an adapter for filename. A nil parser is chosen
// from the file extension at load time.
func NewFileAdapter(parser Parser, filename string) *FileAdapter {
	return &FileAdapter{parser: parser, path: filename}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a.path == "" {
		return nil, ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	parser := a.parser
	if parser == nil {
		if parser, err = ParserForFile(a.path); err != nil {
			return nil, err
		}
	}
	return parser.Parse(ctx, content)
}

// FSAdapter loads every supported file in one directory of an fs.FS.
// It serves embedded catalogues (embed.FS) as well as on-disk ones (os.DirFS).
// Files for the same language are deep-merged in directory order.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	all := make(map[string]map[string]any)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser, err := ParserForFile(entry.Name())
		if err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		parsed, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for lang, tree := range parsed {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(tree))
			}
			mergeTree(all[lang], tree)
		}
	}
	return all, nil
}

// mergeTree copies src into dst, descending into maps present on both sides.
func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcOK := v.(map[string]any)
		dstMap, dstOK := dst[k].(map[string]any)
		if srcOK && dstOK {
			mergeTree(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}
