package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	contents := map[string]string{
		"diary/Mood":     "happy",
		"diary/Activity": "hiking",
		"other/Ignored":  "nope",
		"Loose":          "loose line",
	}
	read := func(name string) (string, error) {
		return contents[name], nil
	}

	t.Run("no prefix keeps every source", func(t *testing.T) {
		catalog := Build([]string{"diary/Mood", "Loose"}, "", read)
		require.Len(t, catalog, 2)
		assert.Contains(t, catalog, "diary/Mood")
		assert.Contains(t, catalog, "Loose")
	})

	t.Run("prefix filters and strips", func(t *testing.T) {
		names := []string{"diary/Mood", "diary/Activity", "other/Ignored", "Loose"}
		catalog := Build(names, "diary", read)

		require.Len(t, catalog, 2)
		assert.Contains(t, catalog, "Mood")
		assert.Contains(t, catalog, "Activity")
	})

	t.Run("name equal to the prefix is dropped", func(t *testing.T) {
		catalog := Build([]string{"diary", "diary/Mood"}, "diary", read)
		require.Len(t, catalog, 1)
		assert.Contains(t, catalog, "Mood")
	})

	t.Run("entries read the stored source", func(t *testing.T) {
		catalog := Build([]string{"diary/Mood"}, "diary", read)

		got, err := catalog["Mood"].Pick(true)
		require.NoError(t, err)
		assert.Equal(t, "happy", got)
	})

	t.Run("entries read fresh content", func(t *testing.T) {
		catalog := Build([]string{"diary/Mood"}, "diary", read)

		contents["diary/Mood"] = "gloomy"
		defer func() { contents["diary/Mood"] = "happy" }()

		got, err := catalog["Mood"].Pick(true)
		require.NoError(t, err)
		assert.Equal(t, "gloomy", got)
	})
}
