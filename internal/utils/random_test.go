package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOneTimeCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOneTimeCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000, "code must never have a leading zero")
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateResetToken_Entropy(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateResetToken()
		require.NoError(t, err)
		require.Len(t, token, 32, "16 random bytes hex-encode to 32 characters")
		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}
