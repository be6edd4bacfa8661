package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tmercier/linemix/internal/template"
)

// RofiConfig holds configuration specific to the Rofi user interface.
type RofiConfig struct {
	// Path is the command or path to the Rofi executable.
	Path string `toml:"path"`
	// Theme specifies the Rofi theme to use. If empty, Rofi's default theme is used.
	Theme string `toml:"theme,omitempty"`
	// SelectArgs are extra arguments to pass to Rofi for selection dialogs.
	SelectArgs []string `toml:"select_args,omitempty"`
}

// RofiUI implements the UI interface using Rofi for user interactions.
type RofiUI struct {
	config RofiConfig
}

// NewRofiUI creates a new RofiUI instance with the given Rofi configuration.
func NewRofiUI(config RofiConfig) UI {
	return &RofiUI{config: config}
}

// runRofi executes a Rofi dmenu command with the given input lines and
// returns the selected line.
func (u *RofiUI) runRofi(prompt string, input string, args []string) (string, error) {
	cmdArgs := []string{"-dmenu"}
	if prompt != "" {
		cmdArgs = append(cmdArgs, "-p", prompt)
	}

	if u.config.Theme != "" {
		cmdArgs = append(cmdArgs, "-theme", u.config.Theme)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.Command(u.config.Path, cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Rofi exits with status 1 when the user presses Esc. Other
		// non-zero exits are actual errors.
		var exitError *exec.ExitError
		if errors.As(err, &exitError) && exitError.ExitCode() == 1 {
			return "", ErrUserAborted
		}
		return "", fmt.Errorf("rofi command failed: %w\nStderr: %s", err, stderr.String())
	}

	selected := strings.TrimSpace(stdout.String())
	if selected == "" && input != "" {
		// A 0 exit code with empty output is still a cancellation.
		return "", ErrUserAborted
	}

	return selected, nil
}

// SelectTemplate presents the templates in a Rofi dmenu, sorted by usage
// count, and returns the name of the selected template.
func (u *RofiUI) SelectTemplate(templates map[string]*template.Template) (string, error) {
	tpls := byCount(templates)

	var rofiInput strings.Builder
	for _, tpl := range tpls {
		rofiInput.WriteString(fmt.Sprintf("%5d %s\n", tpl.Count, tpl.Name))
	}

	selected, err := u.runRofi("Select template", rofiInput.String(), u.config.SelectArgs)
	if err != nil {
		return "", err
	}

	// Remove the usage count prefix from the selected display string.
	parts := strings.Fields(selected)
	if len(parts) <= 1 {
		return "", fmt.Errorf("incorrect format for the rofi selection")
	}

	name := strings.Join(parts[1:], " ")
	if _, found := templates[name]; !found {
		return "", fmt.Errorf("selected display string %q not found in template list", selected)
	}

	return name, nil
}
