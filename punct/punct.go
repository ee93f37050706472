// Package punct strips ASCII punctuation from the edges of tokens.
//
// Only characters in ASCII are removed, and only from the start and end of
// a token, repeatedly until neither edge is punctuation. Interior
// punctuation survives, so "it's" and "well-known" are unchanged while
// "\"hello,\"" becomes "hello". A token made entirely of punctuation
// becomes the empty string; it is kept in place, never dropped, so cleaned
// output has exactly the shape of its input.
//
// Stripping is idempotent: Strip(Strip(s)) == Strip(s).
//
// All functions are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - Non-ASCII punctuation (« » “ ” ¿ …) is not stripped.
package punct

import "github.com/glmack/multilingual-machines/tokenizer"

// ASCII is the canonical ASCII punctuation set, in code point order.
const ASCII = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// asciiSet is a byte lookup table for ASCII.
var asciiSet = func() (set [128]bool) {
	for i := 0; i < len(ASCII); i++ {
		set[ASCII[i]] = true
	}
	return set
}()

// IsPunct reports whether r is in the ASCII punctuation set.
func IsPunct(r rune) bool {
	return r >= 0 && r < 128 && asciiSet[r]
}

func isPunctByte(b byte) bool {
	return b < 128 && asciiSet[b]
}

// Strip removes ASCII punctuation from both edges of token.
func Strip(token string) string {
	start, end := bounds(token)
	return token[start:end]
}

// Clean strips every token of every sentence.
// The result has the same outer and inner lengths as sentences.
func Clean(sentences [][]string) [][]string {
	out := make([][]string, len(sentences))
	for i, sentence := range sentences {
		cleaned := make([]string, len(sentence))
		for j, tok := range sentence {
			cleaned[j] = Strip(tok)
		}
		out[i] = cleaned
	}
	return out
}

// CleanTokens strips structured tokens and narrows their offsets so that
// s[t.Start:t.End] == t.Text still holds against the original text.
// A token made entirely of punctuation becomes an empty token with
// Start == End == the token's original Start.
func CleanTokens(tokens []tokenizer.Token) []tokenizer.Token {
	if tokens == nil {
		return nil
	}
	out := make([]tokenizer.Token, len(tokens))
	for i, t := range tokens {
		start, end := bounds(t.Text)
		out[i] = tokenizer.Token{
			Text:  t.Text[start:end],
			Start: t.Start + start,
			End:   t.Start + end,
		}
	}
	return out
}

// bounds returns the byte range of token left after stripping, or (0, 0)
// when nothing is left.
// Every punctuation character is a single byte, and no byte of a multibyte
// UTF-8 sequence falls in the ASCII range, so scanning bytes is exact.
func bounds(token string) (start, end int) {
	end = len(token)
	for start < end && isPunctByte(token[start]) {
		start++
	}
	if start == end {
		return 0, 0
	}
	for isPunctByte(token[end-1]) {
		end--
	}
	return start, end
}
