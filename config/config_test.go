package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "site.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), c)
	require.Equal(t, "posts", c.PostsDir)
	require.Equal(t, "public", c.OutputDir)
	require.Equal(t, 5, c.HomePosts)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data := "title: Notes\nbase_url: https://example.com\nlegacy_slugs: [old-post, other]\nhome_posts: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Notes", c.Title)
	require.Equal(t, "https://example.com", c.BaseURL)
	require.Equal(t, []string{"old-post", "other"}, c.LegacySlugs)
	require.Equal(t, 3, c.HomePosts)
	require.Equal(t, "static", c.StaticDir)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_UnknownTimezone_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Nowhere/Atlantis\n"), 0644))

	_, err := Load(path)
	require.ErrorContains(t, err, "loading timezone")
}

func TestLoad_NonPositiveHomePosts_UsesDefault(t *testing.T) {
	for _, n := range []string{"0", "-1"} {
		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("home_posts: "+n+"\n"), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 5, c.HomePosts, "home_posts: %s", n)
	}
}
