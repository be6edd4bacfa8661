// Package template implements templates expanded by drawing random lines
// from named sources.
package template

import (
	"fmt"
	"strings"
)

// Notifier is a fire-and-forget sink for diagnostics raised during an
// expansion. Implementations must not block.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) { f(message) }

// Picker draws one random line from a source.
// *source.Source satisfies this interface.
type Picker interface {
	Pick(stripMarkers bool) (string, error)
}

// Catalog maps placeholder names to the sources that resolve them. It is
// built fresh for every expansion and never retained by the Expander.
type Catalog map[string]Picker

// Expander expands template bodies against a source catalog.
type Expander struct {
	notify Notifier
}

// NewExpander creates an Expander reporting diagnostics to notify.
// A nil notify discards diagnostics.
func NewExpander(notify Notifier) *Expander {
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	return &Expander{notify: notify}
}

// Expand replaces every ${name} placeholder in body with a random line drawn
// from catalog[name], markers stripped, and returns the assembled string.
// name identifies the template in diagnostics.
//
// Failures never abort the whole expansion: an unknown name or an empty
// source is reported through the Notifier and contributes nothing to the
// output, and a placeholder with no closing brace is reported and ends the
// scan, returning the output accumulated so far. Expand never returns an
// error; callers always receive a (possibly partial) string.
func (e *Expander) Expand(name string, body string, catalog Catalog) string {
	var out strings.Builder

	pos := 0
	for {
		rel := strings.Index(body[pos:], "${")
		if rel < 0 {
			// No more placeholders, copy the tail verbatim.
			out.WriteString(body[pos:])
			break
		}
		open := pos + rel

		// Literal run before the placeholder.
		out.WriteString(body[pos:open])

		end := strings.Index(body[open+2:], "}")
		if end < 0 {
			// Without the closing brace there is no reliable way to locate
			// further placeholders, so the scan stops here.
			e.notify.Notify(fmt.Sprintf("template %q: placeholder opened at offset %d is never closed", name, open))
			break
		}

		key := body[open+2 : open+2+end]
		if src, found := catalog[key]; found {
			line, err := src.Pick(true)
			if err != nil {
				e.notify.Notify(fmt.Sprintf("template %q: source %q produced no value: %v", name, key, err))
			} else {
				out.WriteString(line)
			}
		} else {
			e.notify.Notify(fmt.Sprintf("template %q: no source named %q", name, key))
		}

		pos = open + 2 + end + 1
	}

	return out.String()
}
