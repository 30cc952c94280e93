package pathkv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitNormalizesSlashes(t *testing.T) {
	cases := map[string][]string{
		"/a/b/c":   {"a", "b", "c"},
		"a/b/c":    {"a", "b", "c"},
		"/a//b/c/": {"a", "b", "c"},
		"":         {},
		"/":        {},
		"///":      {},
		"a":        {"a"},
	}
	for in, want := range cases {
		require.Equal(t, want, Split(in), "Split(%q)", in)
	}
}

func TestJoinReassemblesCanonicalPath(t *testing.T) {
	require.Equal(t, "/a/b/c", Join([]string{"a", "b", "c"}))
	require.Equal(t, "/", Join(nil))
}

func TestSplitJoinRoundTrip(t *testing.T) {
	require.Equal(t, "/a/b/c", Join(Split("/a//b/c/")))
}
