package util

import (
	"crypto/rand"
)

// CodeAlphabet leaves out 0/O and 1/I so codes survive being read aloud.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	MinCodeLength     = 4
	MaxCodeLength     = 16
	DefaultCodeLength = 8
	MaxBatchCount     = 500
	DefaultPrefix     = "SAVE"

	// batchDrawFactor bounds how many draws a batch may take per requested code.
	batchDrawFactor = 10
)

// GenerateCode returns length symbols drawn uniformly from CodeAlphabet,
// joined to prefix with a hyphen when prefix is non-empty.
func GenerateCode(prefix string, length int) string {
	if length < 0 {
		length = 0
	}

	buf := make([]byte, length)
	// The alphabet has exactly 32 symbols, so masking a random byte keeps the
	// draw uniform.
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = CodeAlphabet[buf[i]&31]
	}

	if prefix == "" {
		return string(buf)
	}
	return prefix + "-" + string(buf)
}

// GenerateBatchCodes draws until count distinct codes exist or 10*count draws
// were made. It may return fewer than count codes; callers report the shortfall
// through the returned length.
func GenerateBatchCodes(prefix string, length int, count int) []string {
	if count <= 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, count)
	codes := make([]string, 0, count)
	maxDraws := count * batchDrawFactor

	for draws := 0; len(codes) < count && draws < maxDraws; draws++ {
		code := GenerateCode(prefix, length)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes
}
