// Package ui provides the interactive template pickers for linemix.
// It includes a terminal select UI, a fuzzy finder UI and a Rofi UI.
package ui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/huh"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/tmercier/linemix/internal/template"
)

// ErrUserAborted is returned when the user cancels a selection.
// Mimicking huh.ErrUserAborted for consistency in error handling.
var ErrUserAborted = huh.ErrUserAborted

// UI defines the interface for user interactions.
type UI interface {
	// SelectTemplate asks the user to choose a template from a map of
	// available templates. It returns the name of the selected template or
	// an error if the selection fails.
	SelectTemplate(templates map[string]*template.Template) (string, error)
}

// byCount returns the templates as a slice sorted by usage count in
// descending order, so that frequently used templates appear first.
func byCount(templates map[string]*template.Template) []*template.Template {
	var tpls []*template.Template
	for _, tpl := range templates {
		tpls = append(tpls, tpl)
	}
	sort.Slice(tpls, func(i, j int) bool {
		if tpls[i].Count != tpls[j].Count {
			return tpls[i].Count > tpls[j].Count
		}
		return tpls[i].Name < tpls[j].Name
	})
	return tpls
}

// TermUI implements the UI interface using the charmbracelet/huh library for
// terminal-based interactions.
type TermUI struct{}

// NewTermUI creates a new TermUI instance.
func NewTermUI() UI {
	return &TermUI{}
}

// SelectTemplate presents a terminal select prompt with the templates sorted
// by usage count.
func (u *TermUI) SelectTemplate(templates map[string]*template.Template) (string, error) {
	var opts []huh.Option[string]
	for _, tpl := range byCount(templates) {
		opts = append(opts, huh.NewOption[string](fmt.Sprintf("%4d %s", tpl.Count, tpl.Name), tpl.Name))
	}

	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Template to generate").
				Options(opts...).
				Value(&name),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("failed to run select form: %w", err)
	}

	return name, nil
}

// FuzzyUI implements the UI interface using a fuzzy finder for selections.
type FuzzyUI struct{}

// NewFuzzyUI creates a new FuzzyUI instance.
func NewFuzzyUI() UI {
	return &FuzzyUI{}
}

// SelectTemplate presents a fuzzy finder over the templates, sorted by usage
// count, with the template body shown in a preview window.
func (u *FuzzyUI) SelectTemplate(templates map[string]*template.Template) (string, error) {
	tpls := byCount(templates)

	idx, err := fuzzyfinder.Find(
		tpls,
		func(i int) string {
			return fmt.Sprintf("%5d %s", tpls[i].Count, tpls[i].Name)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return tpls[i].Body
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to find template: %w", err)
	}

	return tpls[idx].Name, nil
}
