// Package tokenizer splits sentences into whitespace-delimited tokens.
//
// The package provides two API layers:
//
//   - Structured: FieldTokens returns []Token with byte offsets. The
//     invariant s[t.Start:t.End] == t.Text holds for every token.
//
//   - Convenience: Fields returns []string for a single sentence and Split
//     maps a whole corpus to its token sequences.
//
// Any run of one or more whitespace characters is a single delimiter, so
// leading, trailing and repeated whitespace never produce empty tokens.
//
// All functions are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - No linguistic tokenization: "don't", "U.S." and "hello," are each a
//     single token. Use package punct to strip edge punctuation.
//   - Bytes that are not valid UTF-8 are never treated as whitespace and
//     stay inside the surrounding token.
package tokenizer

import "fmt"

// Token is a whitespace-delimited unit of text with its position.
type Token struct {
	Text  string // The token text
	Start int    // Byte offset in the original string (inclusive)
	End   int    // Byte offset in the original string (exclusive)
}

// String returns a debug representation, e.g. "hello"[0:5].
func (t Token) String() string {
	return fmt.Sprintf("%q[%d:%d]", t.Text, t.Start, t.End)
}

// FieldTokens splits s into whitespace-delimited tokens with byte offsets.
// Returns nil when s contains no tokens.
func FieldTokens(s string) []Token {
	if s == "" {
		return nil
	}
	return fieldTokens(s)
}

// Fields returns the whitespace-delimited tokens of s.
// Returns nil when s is empty or whitespace-only.
func Fields(s string) []string {
	if s == "" {
		return nil
	}
	tokens := fieldTokens(s)
	if len(tokens) == 0 {
		return nil
	}
	fields := make([]string, len(tokens))
	for i, t := range tokens {
		fields[i] = t.Text
	}
	return fields
}

// Split tokenizes every sentence of a corpus.
// The result has the same length and order as texts. Entries for empty or
// whitespace-only sentences are empty, non-nil slices.
func Split(texts []string) [][]string {
	out := make([][]string, len(texts))
	for i, s := range texts {
		fields := Fields(s)
		if fields == nil {
			fields = []string{}
		}
		out[i] = fields
	}
	return out
}
