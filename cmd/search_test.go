package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// resetSearchFlags undoes flag state left behind by a rootCmd.Execute call,
// so viper falls back to its defaults for the next test.
func resetSearchFlags(t *testing.T) {
	t.Helper()

	t.Cleanup(func() {
		for _, name := range []string{
			levelsFlagName, tagFlagName, formatFlagName,
			noIgnoreFlagName, noBlameFlagName, interactiveFlagName,
		} {
			flag := rootCmd.Flags().Lookup(name)
			require.NotNil(t, flag)

			// Unchanged bound flags fall through to the viper defaults.
			flag.Changed = false
		}

		tagFlag = ""
		interactiveFlag = false
	})
}

func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return tempDir
}

func TestRunSearch_JSONOutput(t *testing.T) {
	resetSearchFlags(t)
	tempDir := chdirTemp(t)

	source := "// TODO: wire the cache\n" +
		"// NOTE: kept for reference\n" +
		"int main() { return 0; } // FIXME: leaks\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "main.c"), []byte(source), 0o644))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		".",
		"--format", "json",
		"--levels", "fix,improvement,information",
		"--no-blame",
	})

	err := rootCmd.Execute()
	require.NoError(t, err)

	var tags []m.Tag
	require.NoError(t, json.Unmarshal(out.Bytes(), &tags))
	require.Len(t, tags, 3)

	assert.Equal(t, m.KindTodo, tags[0].Kind)
	assert.Equal(t, "wire the cache", tags[0].Message)
	assert.Equal(t, 1, tags[0].Line)
	assert.Equal(t, m.KindNote, tags[1].Kind)
	assert.Equal(t, m.KindFix, tags[2].Kind)
	assert.Nil(t, tags[2].Git)
}

func TestRunSearch_LevelFilterDropsAnnotations(t *testing.T) {
	resetSearchFlags(t)
	tempDir := chdirTemp(t)

	source := "// TODO: actionable\n// NOTE: annotation only\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "main.c"), []byte(source), 0o644))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{".", "--no-blame"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "actionable")
	assert.NotContains(t, out.String(), "annotation only")
}

func TestRunSearch_TagFlagOverridesLevels(t *testing.T) {
	resetSearchFlags(t)
	tempDir := chdirTemp(t)

	source := "// TODO: skip me\n// NOTE: keep me\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "a.c"), []byte(source), 0o644))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{".", "--no-blame", "--tag", "note"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "keep me")
	assert.NotContains(t, out.String(), "skip me")
}

func TestRunSearch_InvalidFormat(t *testing.T) {
	resetSearchFlags(t)
	chdirTemp(t)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{".", "--format", "pdf"})

	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestRunSearch_InvalidLevel(t *testing.T) {
	resetSearchFlags(t)
	chdirTemp(t)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{".", "--levels", "critical"})

	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestTagFilter(t *testing.T) {
	todo := m.Tag{Kind: m.KindTodo}
	note := m.Tag{Kind: m.KindNote}
	bug := m.Tag{Kind: m.KindBug}
	custom := m.Tag{Kind: m.TagKind("BANANA")}

	t.Run("default levels keep fix and improvement", func(t *testing.T) {
		filter, err := tagFilter()
		require.NoError(t, err)

		assert.True(t, filter(todo))
		assert.True(t, filter(bug))
		assert.False(t, filter(note))
		assert.False(t, filter(custom))
	})

	t.Run("custom level keeps unknown keywords", func(t *testing.T) {
		viper.Set(levelsConfigKey, []string{"custom"})
		t.Cleanup(func() { viper.Set(levelsConfigKey, defaultLevels) })

		filter, err := tagFilter()
		require.NoError(t, err)

		assert.True(t, filter(custom))
		assert.False(t, filter(todo))
	})

	t.Run("tag flag overrides level filter", func(t *testing.T) {
		tagFlag = "note"
		t.Cleanup(func() { tagFlag = "" })

		filter, err := tagFilter()
		require.NoError(t, err)

		assert.True(t, filter(note))
		assert.False(t, filter(todo))
	})

	t.Run("tag flag matches synonyms", func(t *testing.T) {
		tagFlag = "fixme"
		t.Cleanup(func() { tagFlag = "" })

		filter, err := tagFilter()
		require.NoError(t, err)

		assert.True(t, filter(m.Tag{Kind: m.KindFix}))
		assert.False(t, filter(todo))
	})

	t.Run("unknown level errors", func(t *testing.T) {
		viper.Set(levelsConfigKey, []string{"urgent"})
		t.Cleanup(func() { viper.Set(levelsConfigKey, defaultLevels) })

		_, err := tagFilter()
		require.Error(t, err)
	})
}
