package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomStringRejectsBadArguments(t *testing.T) {
	t.Parallel()

	_, err := RandomString(-1, "abc")
	assert.ErrorIs(t, err, ErrNegativeLength)

	_, err = RandomString(4, "")
	assert.ErrorIs(t, err, ErrEmptyAlphabet)

	got, err := RandomString(0, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRandomStringUsesOnlyAlphabet(t *testing.T) {
	t.Parallel()

	got, err := RandomString(8, "X")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("X", 8), got)

	alphabet := "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	got, err = RandomString(64, alphabet)
	require.NoError(t, err)
	require.Len(t, got, 64)
	for _, char := range got {
		assert.Truef(t, strings.ContainsRune(alphabet, char), "unexpected char %q", char)
	}
}

func TestTemporaryPassword(t *testing.T) {
	t.Parallel()

	short, err := TemporaryPassword(3)
	require.NoError(t, err)
	assert.Len(t, short, 8)

	long, err := TemporaryPassword(20)
	require.NoError(t, err)
	assert.Len(t, long, 20)
	for _, char := range long {
		assert.NotContains(t, "0O1lI", string(char))
	}
}
