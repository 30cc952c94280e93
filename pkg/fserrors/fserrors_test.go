package fserrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundWrapsSentinelAndFormatsWithKey(t *testing.T) {
	err := NotFound("get", "/foo/bar")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "get /foo/bar: littlefs: not found", err.Error())
}

func TestPathErrorFormatsWithoutKey(t *testing.T) {
	err := &PathError{Op: "fsck", Err: ErrCorrupt}
	require.Equal(t, "fsck: littlefs: corrupt block", err.Error())
}

func TestDictionaryExpectedUnwraps(t *testing.T) {
	err := DictionaryExpected("set", "/etc")
	require.True(t, errors.Is(err, ErrDictionaryExpected))
	require.False(t, errors.Is(err, ErrValueExpected))
}
