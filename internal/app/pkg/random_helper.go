package pkg

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const codeRunes = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomToken returns an uppercase token without look-alike characters
// (no 0/O, 1/I), safe to read back over a partner counter.
func RandomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeRunes[rand.Intn(len(codeRunes))]
	}
	return string(b)
}

// IssuedCode builds the discount code handed to the user: the partner's
// template plus a timestamp/random suffix. Codes are uppercased so lookup
// can be case-insensitive, and the suffix makes every issued code unique
// per redemption record.
func IssuedCode(template string, now time.Time) string {
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return NormalizeCode(template) + "-" + stamp + RandomToken(6)
}

// NormalizeCode maps a code to its canonical stored form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
