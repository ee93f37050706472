//go:build ignore

// e2e_pipeline exercises the tokenizer, punct and bleu packages end to end
// and writes structured results to data/e2e_pipeline.log.
// Run from the project root:
//
//	go run e2e/e2e_pipeline.go
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/glmack/multilingual-machines/bleu"
	"github.com/glmack/multilingual-machines/internal/logging"
	"github.com/glmack/multilingual-machines/punct"
	"github.com/glmack/multilingual-machines/tokenizer"
)

// ---------- constants ----------

const (
	logPath       = "data/e2e_pipeline.log"
	maxDetailLen  = 200
	concWorkers   = 8
	concIter      = 100
	separator     = "=========================================================="
	truncMaxRunes = 80
)

// ---------- test corpus ----------

var candidates = []string{
	`"The cat," she said, "is on the mat."`,
	`There is a cat on the mat!`,
	`It's a well-known fact -- cats like mats...`,
}

var referencesA = []string{
	`The cat is on the mat.`,
	`There is a cat on the mat.`,
	`It's a well-known fact: cats like mats.`,
}

var referencesB = []string{
	`A cat sits on the mat.`,
	`A cat is sitting on the mat.`,
	`Everyone knows that cats like mats.`,
}

const textMessy = "  \t\"Hello,\"   world!!  \n (it's)  ...  U.S.A.  "

// ---------- types ----------

type testResult struct {
	name     string
	module   string
	passed   bool
	duration time.Duration
	detail   string
}

type moduleReport struct {
	name     string
	tests    int
	passed   int
	failed   int
	duration time.Duration
}

// ---------- helpers ----------

func pass(module, name string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: true, duration: time.Since(start)}
}

func fail(module, name, detail string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: false, duration: time.Since(start), detail: truncate(detail, maxDetailLen)}
}

func truncate(s string, maxRunes int) string {
	n := 0
	for i := range s {
		n++
		if n > maxRunes {
			return s[:i] + "..."
		}
	}
	return s
}

func safeRun(module, name string, fn func() testResult) (r testResult) {
	defer func() {
		if p := recover(); p != nil {
			r = fail(module, name, fmt.Sprintf("PANIC: %v", p), time.Now())
		}
	}()
	return fn()
}

func prepare(texts []string) [][]string {
	return punct.Clean(tokenizer.Split(texts))
}

// ---------- test suites ----------

func testTokenizer() []testResult {
	const mod = "tokenizer"
	var results []testResult

	results = append(results, safeRun(mod, "split_preserves_length", func() testResult {
		start := time.Now()
		texts := append([]string{"", "   "}, candidates...)
		if got := tokenizer.Split(texts); len(got) != len(texts) {
			return fail(mod, "split_preserves_length", fmt.Sprintf("got %d sentences, want %d", len(got), len(texts)), start)
		}
		return pass(mod, "split_preserves_length", start)
	}))

	results = append(results, safeRun(mod, "messy_whitespace", func() testResult {
		start := time.Now()
		got := strings.Join(tokenizer.Fields(textMessy), "|")
		const want = `"Hello,"|world!!|(it's)|...|U.S.A.`
		if got != want {
			return fail(mod, "messy_whitespace", fmt.Sprintf("expect: %s\nactual: %s", want, got), start)
		}
		return pass(mod, "messy_whitespace", start)
	}))

	results = append(results, safeRun(mod, "offset_invariant", func() testResult {
		start := time.Now()
		for _, tok := range tokenizer.FieldTokens(textMessy) {
			if textMessy[tok.Start:tok.End] != tok.Text {
				return fail(mod, "offset_invariant", tok.String(), start)
			}
		}
		return pass(mod, "offset_invariant", start)
	}))

	return results
}

func testPunct() []testResult {
	const mod = "punct"
	var results []testResult

	results = append(results, safeRun(mod, "strip_edges_only", func() testResult {
		start := time.Now()
		got := strings.Join(punct.Clean([][]string{tokenizer.Fields(textMessy)})[0], "|")
		const want = `Hello|world|it's||U.S.A`
		if got != want {
			return fail(mod, "strip_edges_only", fmt.Sprintf("expect: %s\nactual: %s", want, got), start)
		}
		return pass(mod, "strip_edges_only", start)
	}))

	results = append(results, safeRun(mod, "idempotent", func() testResult {
		start := time.Now()
		once := prepare(candidates)
		twice := punct.Clean(once)
		for i := range once {
			if strings.Join(once[i], " ") != strings.Join(twice[i], " ") {
				return fail(mod, "idempotent", truncate(candidates[i], truncMaxRunes), start)
			}
		}
		return pass(mod, "idempotent", start)
	}))

	return results
}

func testBLEU() []testResult {
	const mod = "bleu"
	var results []testResult

	results = append(results, safeRun(mod, "references_independent", func() testResult {
		start := time.Now()
		refs := bleu.References([]string{"a", "b"}, []string{"c"}, 3)
		refs[0][0] = "x"
		if refs[1][0] != "a" || refs[2][0] != "a" {
			return fail(mod, "references_independent", fmt.Sprintf("%q", refs), start)
		}
		return pass(mod, "references_independent", start)
	}))

	results = append(results, safeRun(mod, "self_score_is_one", func() testResult {
		start := time.Now()
		cands := prepare(referencesA)
		refs := make([][][]string, len(cands))
		for i := range cands {
			refs[i] = [][]string{cands[i]}
		}
		score, err := bleu.CorpusScore(refs, cands)
		if err != nil {
			return fail(mod, "self_score_is_one", err.Error(), start)
		}
		if math.Abs(score.BLEU-1) > 1e-9 {
			return fail(mod, "self_score_is_one", fmt.Sprintf("BLEU=%v", score.BLEU), start)
		}
		return pass(mod, "self_score_is_one", start)
	}))

	results = append(results, safeRun(mod, "corpus_score_in_range", func() testResult {
		start := time.Now()
		cands := prepare(candidates)
		a, b := prepare(referencesA), prepare(referencesB)
		refs := make([][][]string, len(cands))
		for i := range cands {
			refs[i] = [][]string{a[i], b[i]}
		}
		score, err := bleu.CorpusScore(refs, cands)
		if err != nil {
			return fail(mod, "corpus_score_in_range", err.Error(), start)
		}
		if score.BLEU <= 0 || score.BLEU >= 1 {
			return fail(mod, "corpus_score_in_range", fmt.Sprintf("BLEU=%v", score.BLEU), start)
		}
		return pass(mod, "corpus_score_in_range", start)
	}))

	return results
}

func testConcurrent() []testResult {
	const mod = "concurrent"
	var results []testResult

	results = append(results, safeRun(mod, "all_modules_8_goroutines_x100", func() testResult {
		start := time.Now()
		var panics atomic.Int64
		var wg sync.WaitGroup

		for range concWorkers {
			wg.Go(func() {
				for range concIter {
					func() {
						defer func() {
							if p := recover(); p != nil {
								panics.Add(1)
							}
						}()
						cands := prepare(candidates)
						punct.CleanTokens(tokenizer.FieldTokens(textMessy))
						refs := bleu.References([][]string{cands[0]}, [][]string{cands[1]}, len(cands))
						_, _ = bleu.CorpusScore(refs, cands)
					}()
				}
			})
		}
		wg.Wait()

		if n := panics.Load(); n > 0 {
			return fail(mod, "all_modules_8_goroutines_x100",
				fmt.Sprintf("%d panics detected across goroutines", n), start)
		}
		return pass(mod, "all_modules_8_goroutines_x100", start)
	}))

	return results
}

// ---------- reporting ----------

func runAllSuites() []testResult {
	suites := []func() []testResult{
		testTokenizer,
		testPunct,
		testBLEU,
		testConcurrent,
	}

	var all []testResult
	for _, suite := range suites {
		all = append(all, suite()...)
	}
	return all
}

func buildReports(results []testResult) []moduleReport {
	order := make(map[string]int)
	var reports []moduleReport

	for _, r := range results {
		idx, exists := order[r.module]
		if !exists {
			idx = len(reports)
			order[r.module] = idx
			reports = append(reports, moduleReport{name: r.module})
		}
		reports[idx].tests++
		reports[idx].duration += r.duration
		if r.passed {
			reports[idx].passed++
		} else {
			reports[idx].failed++
		}
	}
	return reports
}

func writeLog(path string, results []testResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw, "  multilingual-machines E2E Pipeline Test")
	fmt.Fprintf(bw, "  Timestamp: %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(bw, "  Go: %s  OS: %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw)

	for _, rep := range buildReports(results) {
		fmt.Fprintf(bw, "[%s] %d tests | %d passed | %d failed | %s\n",
			rep.name, rep.tests, rep.passed, rep.failed, rep.duration.Round(time.Microsecond))
		for _, r := range results {
			if r.module != rep.name {
				continue
			}
			status := "PASS"
			if !r.passed {
				status = "FAIL"
			}
			fmt.Fprintf(bw, "  %-6s %-45s %s\n", status, r.name, r.duration.Round(time.Microsecond))
			if r.detail != "" {
				for line := range strings.SplitSeq(r.detail, "\n") {
					fmt.Fprintf(bw, "        %s\n", line)
				}
			}
		}
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(logger *slog.Logger, results []testResult) {
	failed := 0
	for _, rep := range buildReports(results) {
		failed += rep.failed
		logger.Info("module", "name", rep.name, "passed", rep.passed, "tests", rep.tests)
	}
	for _, r := range results {
		if !r.passed {
			logger.Error("failed", "module", r.module, "test", r.name, "detail", r.detail)
		}
	}
	logger.Info("summary", "tests", len(results), "failed", failed)
}

func main() {
	logger, err := logging.New(logging.Options{Level: "info"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	totalStart := time.Now()
	results := runAllSuites()
	logger.Info("completed", "elapsed", time.Since(totalStart).Round(time.Microsecond))

	printSummary(logger, results)

	if err := writeLog(logPath, results); err != nil {
		logger.Error("cannot write log", "error", err)
		os.Exit(1)
	}
	logger.Info("log written", "path", logPath)

	for _, r := range results {
		if !r.passed {
			os.Exit(1)
		}
	}
}
