package vocab

import (
	"sort"
	"strings"
	"sync"
)

// similarityCutoff is the minimum ratio for a fuzzy vocabulary match.
const similarityCutoff = 0.7

var (
	sortedKeysOnce sync.Once
	sortedKeys     []string
)

// commandKeys returns the vocabulary keys in a stable order so fuzzy
// tie-breaks are deterministic.
func commandKeys() []string {
	sortedKeysOnce.Do(func() {
		sortedKeys = make([]string, 0, len(commands))
		for k := range commands {
			sortedKeys = append(sortedKeys, k)
		}
		sort.Strings(sortedKeys)
	})
	return sortedKeys
}

// Normalize maps raw input to a canonical intent token. The input is
// trimmed, lowercased, slang-expanded token by token, and matched against
// the command vocabulary, first exactly and then by similarity ratio.
// Input that resolves to no known command is returned as the normalized
// phrase so the caller can treat it as free-form content.
func Normalize(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}

	words := strings.Fields(text)
	for i, w := range words {
		if expanded, ok := slangWords[w]; ok {
			words[i] = expanded
		}
	}
	phrase := strings.Join(words, " ")

	if intent, ok := commands[phrase]; ok {
		return intent
	}

	if key, ok := closestKey(phrase); ok {
		return commands[key]
	}

	return phrase
}

// closestKey returns the vocabulary key nearest to phrase, provided its
// similarity ratio meets the cutoff. Ties keep the first key in stable
// enumeration order.
func closestKey(phrase string) (string, bool) {
	best := ""
	bestRatio := 0.0
	for _, key := range commandKeys() {
		if r := Ratio(phrase, key); r >= similarityCutoff && r > bestRatio {
			best = key
			bestRatio = r
		}
	}
	return best, best != ""
}

// Ratio is a similarity measure in [0, 1] for two strings: twice the
// length of their longest common subsequence over the total length.
// Equivalent in spirit to difflib's SequenceMatcher ratio for the short
// phrases the vocabulary holds.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(lcsLen(a, b)) / float64(len(a)+len(b))
}

func lcsLen(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
