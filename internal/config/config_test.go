package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRepoList(t *testing.T) {
	t.Run("skips blank lines and trims whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "repos.txt")
		content := "octo/widgets\n\n  octo/gadgets  \n\n\nocto/tools\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		repos, err := LoadRepoList(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"octo/widgets", "octo/gadgets", "octo/tools"}, repos)
	})

	t.Run("empty file yields no repositories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "repos.txt")
		require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

		repos, err := LoadRepoList(path)
		require.NoError(t, err)
		assert.Empty(t, repos)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRepoList(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}
