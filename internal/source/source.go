// Package source implements named line-oriented corpora from which one line
// is drawn at random.
package source

import (
	"fmt"
	"math/rand"
	"strings"
)

// ReadFunc returns the current backing text of a source. It is called on
// every pick so that edits to the backing text are reflected immediately.
type ReadFunc func() (string, error)

// EmptySourceError is returned by Pick when a source has no usable lines.
type EmptySourceError struct {
	// Name is the name of the empty source.
	Name string
}

func (e *EmptySourceError) Error() string {
	return fmt.Sprintf("source %q has no usable lines", e.Name)
}

// Source is a named collection of candidate lines backed by a text blob.
type Source struct {
	name string
	read ReadFunc
}

// New creates a Source that reads its backing text through read.
func New(name string, read ReadFunc) *Source {
	return &Source{name: name, read: read}
}

// Name returns the source's name.
func (s *Source) Name() string {
	return s.name
}

// Pick reads the backing text and returns one line chosen uniformly at
// random. Lines are trimmed of surrounding whitespace, and lines that are
// empty after trimming are not eligible. When stripMarkers is set, a leading
// "* " or "- " list marker is removed from the picked line.
// It returns an EmptySourceError when no eligible line exists.
func (s *Source) Pick(stripMarkers bool) (string, error) {
	content, err := s.read()
	if err != nil {
		return "", fmt.Errorf("failed to read source %q: %w", s.name, err)
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	// Guard before indexing: a blob of blank lines must not panic.
	if len(lines) == 0 {
		return "", &EmptySourceError{Name: s.name}
	}

	line := lines[rand.Intn(len(lines))]

	if stripMarkers {
		if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
			line = line[2:]
		}
	}

	return line, nil
}

// FromContent creates a Source backed by a fixed text blob.
func FromContent(name string, content string) *Source {
	return New(name, func() (string, error) {
		return content, nil
	})
}
