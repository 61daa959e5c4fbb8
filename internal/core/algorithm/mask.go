package algorithm

import (
	"math/big"
	"strings"

	"crackInsightBackend/internal/core/domain"
)

type charClass int

const (
	classLower charClass = iota
	classUpper
	classDigit
	classBlank
	classOther
)

var classTokens = map[charClass]domain.MaskToken{
	classLower: domain.TokenLower,
	classUpper: domain.TokenUpper,
	classDigit: domain.TokenDigit,
	classBlank: domain.TokenBlank,
	classOther: domain.TokenSpecial,
}

// tokenCardinality is matched in order; tokens not listed contribute 1.
var tokenCardinality = []struct {
	token domain.MaskToken
	size  int64
}{
	{domain.TokenLower, 26},
	{domain.TokenUpper, 26},
	{domain.TokenDigit, 10},
	{domain.TokenSpecial, 95},
	{domain.TokenBlank, 256},
}

func classify(r rune) charClass {
	switch {
	case r >= 'a' && r <= 'z':
		return classLower
	case r >= 'A' && r <= 'Z':
		return classUpper
	case r >= '0' && r <= '9':
		return classDigit
	case r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r':
		return classBlank
	default:
		return classOther
	}
}

// BuildMask maps every character of plaintext to its 2-character token.
func BuildMask(plaintext string) string {
	var sb strings.Builder
	sb.Grow(len(plaintext) * 2)
	for _, r := range plaintext {
		sb.WriteString(string(classTokens[classify(r)]))
	}
	return sb.String()
}

// Complexity returns the keyspace of mask: the product of its token sizes.
func Complexity(mask string) *big.Int {
	keyspace := big.NewInt(1)
	for i := 0; i+1 < len(mask); i += 2 {
		token := domain.MaskToken(mask[i : i+2])
		for _, tc := range tokenCardinality {
			if tc.token == token {
				keyspace.Mul(keyspace, big.NewInt(tc.size))
				break
			}
		}
	}
	return keyspace
}

// TimeToCrack returns the seconds needed to exhaust complexity at
// throughputHz candidates per second.
func TimeToCrack(complexity *big.Int, throughputHz float64) (float64, error) {
	if throughputHz <= 0 {
		return 0, domain.ErrInvalidThroughput
	}
	return secondsAt(complexity, throughputHz), nil
}

func secondsAt(complexity *big.Int, throughputHz float64) float64 {
	seconds, _ := new(big.Float).Quo(new(big.Float).SetInt(complexity), big.NewFloat(throughputHz)).Float64()
	return seconds
}
