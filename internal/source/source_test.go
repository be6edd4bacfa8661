package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		s := FromContent("fruits", "apple")
		got, err := s.Pick(false)
		require.NoError(t, err)
		assert.Equal(t, "apple", got)
	})

	t.Run("both values appear over many trials", func(t *testing.T) {
		s := FromContent("fruits", "a\nb")
		seen := map[string]int{}
		for i := 0; i < 200; i++ {
			got, err := s.Pick(false)
			require.NoError(t, err)
			assert.Contains(t, []string{"a", "b"}, got)
			seen[got]++
		}
		assert.Positive(t, seen["a"], "pick should not starve %q", "a")
		assert.Positive(t, seen["b"], "pick should not starve %q", "b")
	})

	t.Run("blank lines are not eligible", func(t *testing.T) {
		s := FromContent("fruits", "\n\n  \napple\n\n")
		for i := 0; i < 20; i++ {
			got, err := s.Pick(false)
			require.NoError(t, err)
			assert.Equal(t, "apple", got)
		}
	})

	t.Run("picked lines are trimmed", func(t *testing.T) {
		s := FromContent("fruits", "  apple\t")
		got, err := s.Pick(false)
		require.NoError(t, err)
		assert.Equal(t, "apple", got)
	})
}

func TestPickStripMarkers(t *testing.T) {
	for name, test := range map[string]struct {
		content  string
		strip    bool
		expected string
	}{
		"star marker stripped": {
			content:  "* apple",
			strip:    true,
			expected: "apple",
		},
		"dash marker stripped": {
			content:  "- apple",
			strip:    true,
			expected: "apple",
		},
		"marker kept when disabled": {
			content:  "* apple",
			strip:    false,
			expected: "* apple",
		},
		"marker needs trailing space": {
			content:  "*apple",
			strip:    true,
			expected: "*apple",
		},
		"only the leading marker is stripped": {
			content:  "- - apple",
			strip:    true,
			expected: "- apple",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := FromContent("fruits", test.content).Pick(test.strip)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestPickEmptySource(t *testing.T) {
	for name, content := range map[string]string{
		"empty blob":            "",
		"only newlines":         "\n\n\n",
		"whitespace-only lines": "  \n\t\n   ",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromContent("fruits", content).Pick(true)
			require.Error(t, err)

			var emptyErr *EmptySourceError
			require.ErrorAs(t, err, &emptyErr)
			assert.Equal(t, "fruits", emptyErr.Name)
		})
	}
}

func TestPickReadsFresh(t *testing.T) {
	content := "apple"
	s := New("fruits", func() (string, error) {
		return content, nil
	})

	got, err := s.Pick(false)
	require.NoError(t, err)
	assert.Equal(t, "apple", got)

	// Edits to the backing text must be visible on the next pick.
	content = "banana"
	got, err = s.Pick(false)
	require.NoError(t, err)
	assert.Equal(t, "banana", got)
}

func TestPickReadError(t *testing.T) {
	readErr := errors.New("storage offline")
	s := New("fruits", func() (string, error) {
		return "", readErr
	})

	_, err := s.Pick(false)
	require.ErrorIs(t, err, readErr)
}
