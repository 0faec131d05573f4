package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token := GenerateToken()

	assert.Len(t, token, 32)
	_, err := hex.DecodeString(token)
	require.NoError(t, err, "token must be plain hex")
}

func TestGenerateTokenUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token := GenerateToken()
		_, dup := seen[token]
		require.False(t, dup, "token %q issued twice", token)
		seen[token] = struct{}{}
	}
}
