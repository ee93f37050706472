// Package bleu builds reference lists and computes corpus-level BLEU.
//
// References shapes a pair of references for a scorer that expects one
// reference entry per candidate. CorpusScore and SentenceScore implement
// BLEU (Papineni et al., 2002):
//
//   - Modified n-gram precision for orders 1..MaxOrder. Candidate n-gram
//     counts are clipped by the largest count of that n-gram in any single
//     reference of the same candidate. Numerators and denominators are summed
//     over the whole corpus before dividing.
//   - A corpus brevity penalty exp(1 - r/c) when the total candidate length
//     c does not exceed the effective reference length r. For each candidate
//     r takes the reference length closest to the candidate length, the
//     shorter one on ties.
//   - A weighted geometric mean of the precisions, uniform over four orders
//     by default.
//
// Tokens are compared exactly; tokenize and clean with packages tokenizer
// and punct first.
//
// All functions are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - No smoothing: a corpus with no matching n-gram at some order scores 0.
//   - N-gram keys join tokens with U+0000, so tokens that contain U+0000 can
//     collide.
package bleu

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxOrder is the highest n-gram order scored by default.
const DefaultMaxOrder = 4

var (
	// ErrLengthMismatch reports a different number of reference entries
	// and candidates.
	ErrLengthMismatch = errors.New("bleu: references and candidates differ in length")

	// ErrNoReferences reports a candidate with no reference to score against.
	ErrNoReferences = errors.New("bleu: candidate has no references")

	// ErrInvalidWeights reports an empty, negative or all-zero weight vector.
	ErrInvalidWeights = errors.New("bleu: invalid n-gram weights")
)

// Score is the result of a BLEU computation.
type Score struct {
	BLEU            float64   `json:"bleu"`
	Precisions      []float64 `json:"precisions"`
	BrevityPenalty  float64   `json:"brevity_penalty"`
	CandidateLength int       `json:"candidate_length"`
	ReferenceLength int       `json:"reference_length"`
}

// options holds scoring parameters.
type options struct {
	weights []float64
}

// Option configures a score computation.
type Option func(*options)

// WithMaxOrder scores n-gram orders 1..n with uniform weights.
// Values below 1 leave the order unchanged.
func WithMaxOrder(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.weights = uniformWeights(n)
		}
	}
}

// WithWeights sets one weight per n-gram order, starting at unigrams.
// The number of weights is the highest order scored.
func WithWeights(w ...float64) Option {
	return func(o *options) {
		o.weights = append([]float64(nil), w...)
	}
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	return w
}

func buildOptions(opts []Option) (options, error) {
	o := options{weights: uniformWeights(DefaultMaxOrder)}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.weights) == 0 {
		return o, fmt.Errorf("no weights: %w", ErrInvalidWeights)
	}
	sum := 0.0
	for i, w := range o.weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return o, fmt.Errorf("weight %d is %v: %w", i+1, w, ErrInvalidWeights)
		}
		sum += w
	}
	if sum == 0 {
		return o, fmt.Errorf("all weights are zero: %w", ErrInvalidWeights)
	}
	return o, nil
}

// CorpusScore computes corpus BLEU. references[i] holds every reference
// for candidates[i].
func CorpusScore(references [][][]string, candidates [][]string, opts ...Option) (Score, error) {
	if len(references) != len(candidates) {
		return Score{}, fmt.Errorf("%d reference entries for %d candidates: %w",
			len(references), len(candidates), ErrLengthMismatch)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return Score{}, err
	}

	maxOrder := len(o.weights)
	matches := make([]int, maxOrder)
	totals := make([]int, maxOrder)
	candLen, refLen := 0, 0

	for i, cand := range candidates {
		refs := references[i]
		if len(refs) == 0 {
			return Score{}, fmt.Errorf("candidate %d: %w", i, ErrNoReferences)
		}
		for n := 1; n <= maxOrder; n++ {
			m, t := clippedMatches(refs, cand, n)
			matches[n-1] += m
			totals[n-1] += t
		}
		candLen += len(cand)
		refLen += closestRefLength(refs, len(cand))
	}

	score := Score{
		Precisions:      make([]float64, maxOrder),
		BrevityPenalty:  brevityPenalty(candLen, refLen),
		CandidateLength: candLen,
		ReferenceLength: refLen,
	}

	zero := false
	for n := range maxOrder {
		if totals[n] > 0 {
			score.Precisions[n] = float64(matches[n]) / float64(totals[n])
		}
		if matches[n] == 0 && o.weights[n] > 0 {
			zero = true
		}
	}
	if zero {
		return score, nil
	}

	logSum := 0.0
	for n, w := range o.weights {
		if w == 0 {
			continue
		}
		logSum += w * math.Log(score.Precisions[n])
	}
	score.BLEU = score.BrevityPenalty * math.Exp(logSum)
	return score, nil
}

// SentenceScore computes BLEU for a single candidate against its references.
func SentenceScore(references [][]string, candidate []string, opts ...Option) (Score, error) {
	return CorpusScore([][][]string{references}, [][]string{candidate}, opts...)
}

// brevityPenalty is 1 for candidates longer than the references,
// exp(1 - r/c) otherwise, and 0 for an empty candidate corpus.
func brevityPenalty(candLen, refLen int) float64 {
	if candLen == 0 {
		return 0
	}
	if candLen > refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(candLen))
}
