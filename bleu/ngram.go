package bleu

import "strings"

// ngramSep joins the tokens of an n-gram into a map key.
const ngramSep = "\x00"

// Ngrams counts the n-grams of tokens. Keys are the n tokens joined with
// U+0000. Returns an empty map when n < 1 or len(tokens) < n.
func Ngrams(tokens []string, n int) map[string]int {
	if n < 1 || len(tokens) < n {
		return map[string]int{}
	}
	counts := make(map[string]int, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], ngramSep)]++
	}
	return counts
}

// maxRefCounts returns, for every n-gram of order n found in any reference,
// the largest count it reaches within a single reference.
func maxRefCounts(references [][]string, n int) map[string]int {
	maxCounts := make(map[string]int)
	for _, ref := range references {
		for gram, c := range Ngrams(ref, n) {
			if c > maxCounts[gram] {
				maxCounts[gram] = c
			}
		}
	}
	return maxCounts
}

// clippedMatches returns the clipped n-gram matches of candidate against
// references and the total number of candidate n-grams.
func clippedMatches(references [][]string, candidate []string, n int) (matches, total int) {
	counts := Ngrams(candidate, n)
	if len(counts) == 0 {
		return 0, 0
	}
	maxCounts := maxRefCounts(references, n)
	for gram, c := range counts {
		total += c
		matches += min(c, maxCounts[gram])
	}
	return matches, total
}

// closestRefLength returns the reference length closest to candLen,
// preferring the shorter reference on ties.
func closestRefLength(references [][]string, candLen int) int {
	best := -1
	bestDiff := 0
	for _, ref := range references {
		diff := len(ref) - candLen
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff || (diff == bestDiff && len(ref) < best) {
			best = len(ref)
			bestDiff = diff
		}
	}
	return best
}
