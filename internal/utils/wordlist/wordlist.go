package wordlist

import "strings"

// Dedup drops repeated words and empty lines, keeping first-occurrence order.
func Dedup(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	unique := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		unique = append(unique, word)
	}
	return unique
}

// Body joins words into a newline-terminated .txt wordlist.
func Body(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return strings.Join(words, "\n") + "\n"
}
