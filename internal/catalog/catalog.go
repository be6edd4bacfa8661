// Package catalog builds the name to source mapping used to resolve
// placeholders during one expansion.
package catalog

import (
	"strings"

	"github.com/tmercier/linemix/internal/source"
	"github.com/tmercier/linemix/internal/template"
)

// ReadContent returns the current backing text of the named stored source.
type ReadContent func(name string) (string, error)

// Build creates a catalog from the stored source names, keeping only names
// under prefix. The prefix and a following "/" are stripped from the
// placeholder key, so with prefix "diary" the stored source "diary/Mood"
// resolves the placeholder ${Mood}. An empty prefix keeps every source under
// its stored name.
//
// Each entry reads its content through read on every pick, so the catalog
// holds no stale text. Callers build a fresh catalog per expansion.
func Build(names []string, prefix string, read ReadContent) template.Catalog {
	catalog := make(template.Catalog, len(names))
	for _, name := range names {
		key, ok := keyFor(name, prefix)
		if !ok {
			continue
		}

		stored := name
		catalog[key] = source.New(key, func() (string, error) {
			return read(stored)
		})
	}
	return catalog
}

// keyFor maps a stored source name to its placeholder key, or reports that
// the name falls outside the prefix namespace.
func keyFor(name string, prefix string) (string, bool) {
	if prefix == "" {
		return name, name != ""
	}

	if !strings.HasPrefix(name, prefix) {
		return "", false
	}

	key := strings.TrimPrefix(name, prefix)
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", false
	}

	return key, true
}
