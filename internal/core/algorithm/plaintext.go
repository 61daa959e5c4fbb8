package algorithm

import (
	"encoding/hex"
	"strings"

	"crackInsightBackend/internal/core/domain"
)

const (
	hexPrefix = "$HEX["
	hexSuffix = "]"
)

// DecodePlaintext unwraps hashcat's $HEX[...] encoding. Malformed payloads
// are returned unchanged.
func DecodePlaintext(raw string) string {
	if !strings.HasPrefix(raw, hexPrefix) || !strings.HasSuffix(raw, hexSuffix) || len(raw) < len(hexPrefix)+len(hexSuffix) {
		return raw
	}
	decoded, err := hex.DecodeString(raw[len(hexPrefix) : len(raw)-len(hexSuffix)])
	if err != nil {
		return raw
	}
	return string(decoded)
}

type charsetFlags struct {
	digit   bool
	lower   bool
	upper   bool
	special bool
}

// charsetRules is evaluated in order, first match wins.
var charsetRules = []struct {
	class domain.CharsetClass
	match func(f charsetFlags) bool
}{
	{domain.CharsetNumeric, func(f charsetFlags) bool {
		return f.digit && !f.lower && !f.upper && !f.special
	}},
	{domain.CharsetLowerAlpha, func(f charsetFlags) bool {
		return f.lower && !f.digit && !f.upper && !f.special
	}},
	{domain.CharsetMixedAlpha, func(f charsetFlags) bool {
		return (f.lower || f.upper) && !f.digit && !f.special
	}},
	{domain.CharsetMixedAlphaNum, func(f charsetFlags) bool {
		return f.digit && (f.lower || f.upper) && !f.special
	}},
	{domain.CharsetFullComplex, func(charsetFlags) bool {
		return true
	}},
}

func scanCharset(plaintext string) charsetFlags {
	var f charsetFlags
	for _, r := range plaintext {
		switch classify(r) {
		case classLower:
			f.lower = true
		case classUpper:
			f.upper = true
		case classDigit:
			f.digit = true
		default:
			f.special = true
		}
	}
	return f
}

// CharsetBucket assigns plaintext to one of the five charset classes.
func CharsetBucket(plaintext string) domain.CharsetClass {
	f := scanCharset(plaintext)
	for _, rule := range charsetRules {
		if rule.match(f) {
			return rule.class
		}
	}
	return domain.CharsetFullComplex
}
