package algorithm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crackInsightBackend/internal/core/domain"
)

func TestBuildMask(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
		want      string
	}{
		{name: "Lower and digits", plaintext: "abcd1234", want: "?l?l?l?l?d?d?d?d"},
		{name: "Upper first", plaintext: "Pass", want: "?u?l?l?l"},
		{name: "Whitespace", plaintext: "a b\t", want: "?l?b?l?b"},
		{name: "Symbols", plaintext: "!@#", want: "?s?s?s"},
		{name: "Non ASCII letter", plaintext: "é1", want: "?s?d"},
		{name: "Empty", plaintext: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildMask(tt.plaintext))
		})
	}
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		name string
		mask string
		want int64
	}{
		{name: "Lower lower digit digit", mask: "?l?l?d?d", want: 67600},
		{name: "Upper and special", mask: "?u?s", want: 26 * 95},
		{name: "Blank", mask: "?b", want: 256},
		{name: "Unknown tokens contribute nothing", mask: "?a?d?x", want: 10},
		{name: "Empty mask", mask: "", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, Complexity(tt.mask).Cmp(big.NewInt(tt.want)), "got %s", Complexity(tt.mask))
		})
	}
}

func TestComplexity_LongMaskDoesNotOverflow(t *testing.T) {
	mask := ""
	for i := 0; i < 40; i++ {
		mask += "?s"
	}
	want := new(big.Int).Exp(big.NewInt(95), big.NewInt(40), nil)
	assert.Equal(t, 0, Complexity(mask).Cmp(want))
}

func TestTimeToCrack(t *testing.T) {
	seconds, err := TimeToCrack(Complexity("?l?l?d?d"), 1e9)
	require.NoError(t, err)
	assert.InDelta(t, 0.0000676, seconds, 1e-12)

	_, err = TimeToCrack(big.NewInt(100), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidThroughput)

	_, err = TimeToCrack(big.NewInt(100), -5)
	assert.ErrorIs(t, err, domain.ErrInvalidThroughput)
}
