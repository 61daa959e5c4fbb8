package algorithm

import (
	"fmt"
	"strings"

	"crackInsightBackend/internal/core/domain"
)

// genericRules: identity, capitalize first, toggle case, reverse.
var genericRules = []string{":", "c", "t", "r"}

// SynthesizeRules renders a hashcat rule file that appends every frequent
// suffix and prepends every frequent prefix, followed by a few generic
// transforms.
func SynthesizeRules(prefixes, suffixes []domain.CountEntry) string {
	var sb strings.Builder
	sb.WriteString("## suffixes\n")
	for _, entry := range suffixes {
		if entry.Value == "" {
			continue
		}
		sb.WriteString(appendRule(entry.Value))
		sb.WriteString(" # suffix: ")
		sb.WriteString(ruleComment(entry.Value))
		sb.WriteByte('\n')
	}

	sb.WriteString("## prefixes\n")
	for _, entry := range prefixes {
		if entry.Value == "" {
			continue
		}
		sb.WriteString(prependRule(entry.Value))
		sb.WriteString(" # prefix: ")
		sb.WriteString(ruleComment(entry.Value))
		sb.WriteByte('\n')
	}

	sb.WriteString("## generic\n")
	for _, rule := range genericRules {
		sb.WriteString(rule)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func appendRule(suffix string) string {
	tokens := make([]string, 0, len(suffix))
	for i := 0; i < len(suffix); i++ {
		tokens = append(tokens, "$"+ruleChar(suffix[i]))
	}
	return strings.Join(tokens, " ")
}

// prependRule walks the prefix backwards: each ^ pushes to the front, so
// the last byte has to go first.
func prependRule(prefix string) string {
	tokens := make([]string, 0, len(prefix))
	for i := len(prefix) - 1; i >= 0; i-- {
		tokens = append(tokens, "^"+ruleChar(prefix[i]))
	}
	return strings.Join(tokens, " ")
}

// ruleChar renders one byte as a rule argument. Rules operate on bytes, so
// anything outside printable ASCII, including each byte of a multi-byte
// rune and stray bytes from $HEX plains, becomes hashcat's \xHH notation.
func ruleChar(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02x", b)
}

// ruleComment keeps the comment on one line and free of raw bytes.
func ruleComment(affix string) string {
	var sb strings.Builder
	for i := 0; i < len(affix); i++ {
		sb.WriteString(ruleChar(affix[i]))
	}
	return sb.String()
}
