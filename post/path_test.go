package post

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerivePath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2020-01-02-foo.md", "blog/2020/01/02/foo"},
		{"2020-01-02-foo-bar.md", "blog/2020/01/02/foo-bar"},
		{"about.md", "about"},
		{"notes-2020-01-02.md", "notes-2020-01-02"},
		{"2020-01-02.md", "2020-01-02"},
		{"drafts/2020-01-02-x.md", "drafts/blog/2020/01/02/x"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DerivePath(tt.raw), "DerivePath(%q)", tt.raw)
	}
}

func TestDerivePath_Deterministic(t *testing.T) {
	for _, raw := range []string{"2020-01-02-foo.md", "about.md", "2001-09-09-a-b-c.md"} {
		require.Equal(t, DerivePath(raw), DerivePath(raw))
	}
}

func TestLegacyPath(t *testing.T) {
	slugs := []string{"go-generics", "blogging"}

	require.Equal(t, "code/2018/01/01/go-generics/", LegacyPath("blog/2018/01/01/go-generics", slugs))
	require.Equal(t, "code/2018/01/01/codeging/", LegacyPath("blog/2018/01/01/blogging", slugs))
	require.Empty(t, LegacyPath("blog/2018/01/01/other", slugs))
	require.Empty(t, LegacyPath("blog/2018/01/01/other", nil))
	require.Empty(t, LegacyPath("blog/2018/01/01/other", []string{""}))
}
