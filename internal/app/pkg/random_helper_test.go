package pkg

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomToken(t *testing.T) {
	token := RandomToken(8)
	assert.Len(t, token, 8)
	for _, r := range token {
		assert.Contains(t, codeRunes, string(r))
	}

	// No look-alike characters
	assert.NotContains(t, codeRunes, "0")
	assert.NotContains(t, codeRunes, "O")
	assert.NotContains(t, codeRunes, "1")
	assert.NotContains(t, codeRunes, "I")
}

func TestIssuedCode(t *testing.T) {
	now := time.Now()

	code := IssuedCode("save20", now)
	assert.True(t, strings.HasPrefix(code, "SAVE20-"))
	assert.Equal(t, strings.ToUpper(code), code)

	// Suffixed codes from repeated calls must differ
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c := IssuedCode("SAVE20", now)
		assert.False(t, seen[c], "duplicate issued code %s", c)
		seen[c] = true
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABC-XYZ1", NormalizeCode("abc-xyz1"))
	assert.Equal(t, "ABC-XYZ1", NormalizeCode("  Abc-Xyz1 "))
	assert.Equal(t, "", NormalizeCode("   "))
}
