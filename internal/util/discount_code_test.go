package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	t.Run("prefix and alphabet", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			code := GenerateCode("SAVE", 8)
			require.True(t, strings.HasPrefix(code, "SAVE-"), code)

			random := strings.TrimPrefix(code, "SAVE-")
			require.Len(t, random, 8)
			for _, ch := range random {
				assert.True(t, strings.ContainsRune(CodeAlphabet, ch), "unexpected symbol %q", ch)
			}
		}
	})

	t.Run("no prefix means no hyphen", func(t *testing.T) {
		code := GenerateCode("", 12)
		assert.Len(t, code, 12)
		assert.NotContains(t, code, "-")
	})

	t.Run("ambiguous symbols never appear", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 100; i++ {
			sb.WriteString(GenerateCode("", 16))
		}
		assert.NotContainsf(t, sb.String(), "0", "zero")
		assert.NotContains(t, sb.String(), "O")
		assert.NotContains(t, sb.String(), "1")
		assert.NotContains(t, sb.String(), "I")
	})

	t.Run("alphabet has 32 symbols", func(t *testing.T) {
		assert.Len(t, CodeAlphabet, 32)
	})
}

func TestGenerateBatchCodes(t *testing.T) {
	t.Parallel()

	t.Run("unique codes up to count", func(t *testing.T) {
		codes := GenerateBatchCodes("X", 8, 250)
		require.Len(t, codes, 250)

		seen := map[string]struct{}{}
		for _, code := range codes {
			_, dup := seen[code]
			require.False(t, dup, "duplicate %s", code)
			seen[code] = struct{}{}
		}
	})

	t.Run("small code space under-delivers silently", func(t *testing.T) {
		// One symbol gives 32 possible codes, so 100 can never be reached.
		codes := GenerateBatchCodes("", 1, 100)
		assert.LessOrEqual(t, len(codes), 32)
		assert.NotEmpty(t, codes)
	})

	t.Run("zero count", func(t *testing.T) {
		assert.Empty(t, GenerateBatchCodes("A", 8, 0))
	})
}
