// Package engine glues the store, the user interface and the template
// expansion core into the linemix application.
package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/tmercier/linemix/internal/catalog"
	"github.com/tmercier/linemix/internal/config"
	"github.com/tmercier/linemix/internal/source"
	"github.com/tmercier/linemix/internal/store"
	"github.com/tmercier/linemix/internal/template"
	"github.com/tmercier/linemix/internal/ui"
)

// Engine manages the collection of templates and sources.
type Engine struct {
	config    config.Config
	store     store.Store
	ui        ui.UI
	expander  *template.Expander
	log       zerolog.Logger
	templates map[string]*template.Template
}

var (
	ErrTemplateAlreadyExist = errors.New("template already exists")
	ErrTemplateUnknown      = errors.New("template not found")
)

// NewEngine creates a new Engine. It loads the templates from the store and
// sets up the UI based on preference (CLI flag > config > default).
// Diagnostics raised during generation are reported through notify.
func NewEngine(st store.Store, cfg config.Config, notify template.Notifier, log zerolog.Logger) (*Engine, error) {
	var selectedUI ui.UI
	switch cfg.DefaultUI {
	case "fuzzy":
		selectedUI = ui.NewFuzzyUI()
	case "rofi":
		selectedUI = ui.NewRofiUI(cfg.Rofi)
	default:
		selectedUI = ui.NewTermUI()
	}

	templates, err := st.GetAllTemplates()
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:    cfg,
		store:     st,
		ui:        selectedUI,
		expander:  template.NewExpander(notify),
		log:       log,
		templates: templates,
	}, nil
}

// Names returns the names of the templates.
func (e *Engine) Names() []string {
	return slices.Sorted(maps.Keys(e.templates))
}

// Get retrieves a template by name and returns whether it was found.
func (e *Engine) Get(name string) (*template.Template, bool) {
	tpl, found := e.templates[name]
	return tpl, found
}

// SelectTemplate prompts the user to select a template from the available
// collection. It returns the name of the selected template.
func (e *Engine) SelectTemplate() (string, error) {
	return e.ui.SelectTemplate(e.templates)
}

// AddTemplate creates a new template with the given name and body.
// Returns an error if the name or body is empty, or if a template with the
// same name already exists.
func (e *Engine) AddTemplate(name string, body string) error {
	if name == "" {
		return errors.New("empty template name")
	}

	if body == "" {
		return errors.New("empty template body")
	}

	if _, found := e.templates[name]; found {
		return ErrTemplateAlreadyExist
	}

	tpl := &template.Template{
		Name:  name,
		Body:  body,
		Count: 0,
	}

	// Add template both to local map and store.
	e.templates[name] = tpl
	if err := e.store.CreateTemplate(tpl); err != nil {
		return err
	}

	return nil
}

// EditTemplate updates the body of an existing template.
// Returns an error if the name or body is empty, or if the template doesn't
// exist.
func (e *Engine) EditTemplate(name string, body string) error {
	if name == "" {
		return errors.New("empty template name")
	}

	if body == "" {
		return errors.New("empty template body")
	}

	tpl, found := e.templates[name]
	if !found {
		return ErrTemplateUnknown
	}

	tpl.Body = body

	if err := e.store.UpdateTemplate(tpl); err != nil {
		return err
	}

	return nil
}

// DeleteTemplate removes a template by name.
// Returns an error if the name is empty, unknown, or deletion fails.
func (e *Engine) DeleteTemplate(name string) error {
	if name == "" {
		return errors.New("empty template name")
	}

	if _, found := e.templates[name]; !found {
		return ErrTemplateUnknown
	}

	if err := e.store.DeleteTemplate(name); err != nil {
		return err
	}
	delete(e.templates, name)

	return nil
}

// Generate expands the named template: every ${name} placeholder is replaced
// by a random line from the source resolving that name. The catalog of
// sources is rebuilt from the store on every call, filtered by the
// configured source prefix, so edits to sources are always visible.
//
// Per-placeholder failures (unknown name, empty source) degrade to
// diagnostics and omitted output; Generate only fails when the template is
// unknown or the store cannot be read.
func (e *Engine) Generate(name string) (string, error) {
	tpl, found := e.templates[name]
	if !found {
		return "", fmt.Errorf("unknown template %q", name)
	}

	names, err := e.store.ListSourceNames()
	if err != nil {
		return "", fmt.Errorf("failed to list sources: %w", err)
	}

	cat := catalog.Build(names, e.config.SourcePrefix, e.store.GetSourceContent)
	result := e.expander.Expand(tpl.Name, tpl.Body, cat)

	if err := e.incrementTemplateCount(name); err != nil {
		e.log.Warn().Err(err).Str("template", name).Msg("failed to increment template usage count")
	}

	return result, nil
}

func (e *Engine) incrementTemplateCount(name string) error {
	if _, found := e.templates[name]; !found {
		return fmt.Errorf("unknown template %q", name)
	}
	e.templates[name].Count++

	if err := e.store.IncTemplateCount(name); err != nil {
		return err
	}

	return nil
}

// SourceNames returns the names of the stored sources.
func (e *Engine) SourceNames() ([]string, error) {
	return e.store.ListSourceNames()
}

// SourceContent returns the current text blob of a stored source.
func (e *Engine) SourceContent(name string) (string, error) {
	return e.store.GetSourceContent(name)
}

// AddSource creates a new source with the given content. An empty content is
// accepted; such a source exists but cannot produce a pick.
func (e *Engine) AddSource(name string, content string) error {
	if name == "" {
		return errors.New("empty source name")
	}

	return e.store.CreateSource(name, content)
}

// EditSource replaces the content of an existing source.
func (e *Engine) EditSource(name string, content string) error {
	if name == "" {
		return errors.New("empty source name")
	}

	return e.store.UpdateSource(name, content)
}

// DeleteSource removes a source by name.
func (e *Engine) DeleteSource(name string) error {
	if name == "" {
		return errors.New("empty source name")
	}

	return e.store.DeleteSource(name)
}

// PickFromSource draws one random line from the named source, reading its
// content fresh from the store. Markers are stripped unless raw is set.
func (e *Engine) PickFromSource(name string, raw bool) (string, error) {
	src := source.New(name, func() (string, error) {
		return e.store.GetSourceContent(name)
	})

	return src.Pick(!raw)
}
