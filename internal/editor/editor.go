// Package editor launches the user's editor to compose text content.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// DefaultEditor returns the user's preferred editor.
// The priority is: provided editor > VISUAL > EDITOR > platform default.
func DefaultEditor(editor string) string {
	if editor != "" {
		return editor
	}

	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	switch runtime.GOOS {
	case "windows":
		return "notepad"
	default:
		return "nano"
	}
}

// Edit opens a temporary file pre-filled with initialContent in the user's
// editor and returns the content after the editor exits.
func Edit(editor, initialContent string) (string, error) {
	filename, err := createTempFile(initialContent)
	if err != nil {
		return "", err
	}
	defer os.Remove(filename)

	if err := openEditor(editor, filename); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

// createTempFile creates a temporary file with initial content.
func createTempFile(initialContent string) (string, error) {
	f, err := os.CreateTemp("", "linemix_*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	if initialContent != "" {
		if _, err := f.WriteString(initialContent); err != nil {
			os.Remove(f.Name())
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}

	return f.Name(), nil
}

// openEditor opens the specified file in the user's editor, connected to the
// current terminal.
func openEditor(editor, filename string) error {
	editor = DefaultEditor(editor)

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", editor, filename)
	} else {
		cmd = exec.Command(editor, filename)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
