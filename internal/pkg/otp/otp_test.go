package otp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateFormat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := Generate()
		require.Len(t, code, CodeLength)
		for _, ch := range code {
			require.True(t, ch >= '0' && ch <= '9', "non-digit in code %q", code)
		}
	}
}

func TestGenerateNotConstant(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[Generate()] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}
