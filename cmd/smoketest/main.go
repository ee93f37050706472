// Command smoketest runs the tokenize and clean pipeline over every .txt file
// under a directory and checks its invariants on real text:
//
//   - every token satisfies line[t.Start:t.End] == t.Text, before and after
//     cleaning;
//   - cleaning is idempotent;
//   - cleaning preserves the shape of the token sequences.
//
// Usage:
//
//	go run ./cmd/smoketest <directory>
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"github.com/glmack/multilingual-machines/internal/logging"
	"github.com/glmack/multilingual-machines/punct"
	"github.com/glmack/multilingual-machines/tokenizer"
)

const (
	maxWorkers     = 4
	expectedArgs   = 2
	maxLineBytes   = 4 << 20 // 4 MB per line
	outlierFactor  = 3
	bytesToMBShift = 20
)

type fileRatio struct {
	path      string
	sentences int
	tokens    int
	ratio     float64
}

type Stats struct {
	mu               sync.Mutex
	filesScanned     int
	totalBytes       int64
	sentences        int
	emptySentences   int
	tokens           int
	punctOnlyTokens  int
	offsetFailures   int
	idempotencyFails int
	shapeFailures    int
	lengthOutliers   int
	fileRatios       []fileRatio
}

type fileState struct {
	path             string
	totalBytes       int64
	sentences        int
	emptySentences   int
	tokens           int
	punctOnlyTokens  int
	offsetFailures   int
	idempotencyFails int
	shapeFailures    int
}

func main() {
	if len(os.Args) != expectedArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{Level: os.Getenv("SMOKETEST_LOG_LEVEL")})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dirPath := os.Args[1]
	var filePaths []string
	err = filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		logger.Error("walk directory", "dir", dirPath, "error", err)
		os.Exit(1)
	}

	logger.Info("found files", "count", len(filePaths))
	start := time.Now()

	stats := &Stats{}
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(maxWorkers)
	for _, path := range filePaths {
		g.Go(func() error {
			state, err := processFile(logger, path)
			if err != nil {
				logger.Error("process file", "path", path, "error", err)
				return nil
			}
			mergeFileState(state, stats)
			return nil
		})
	}
	_ = g.Wait()

	flagLengthOutliers(logger, stats)

	logger.Info("completed", "elapsed", time.Since(start).Round(time.Millisecond))
	printStats(stats)

	if stats.offsetFailures+stats.idempotencyFails+stats.shapeFailures > 0 {
		os.Exit(1)
	}
}

func processFile(logger *slog.Logger, path string) (*fileState, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	fileStart := time.Now()
	state := &fileState{path: path}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		state.totalBytes += int64(len(line)) + 1
		state.processLine(logger, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	logger.Debug("file done",
		"path", filepath.Base(path),
		"elapsed", time.Since(fileStart).Round(time.Millisecond),
		"mb", state.totalBytes>>bytesToMBShift,
	)
	return state, nil
}

func (fs *fileState) processLine(logger *slog.Logger, line string) {
	fs.sentences++

	tokens := tokenizer.FieldTokens(line)
	if len(tokens) == 0 {
		fs.emptySentences++
	}
	fs.tokens += len(tokens)

	cleanedTokens := punct.CleanTokens(tokens)
	for i, tok := range slices.Concat(tokens, cleanedTokens) {
		if line[tok.Start:tok.End] != tok.Text {
			fs.offsetFailures++
			logger.Warn("offset invariant broken", "path", fs.path, "token", i, "text", tok.Text)
		}
	}

	split := tokenizer.Split([]string{line})
	cleaned := punct.Clean(split)
	if len(cleaned) != 1 || len(cleaned[0]) != len(tokens) {
		fs.shapeFailures++
		logger.Warn("clean changed shape", "path", fs.path, "line", truncate(line))
		return
	}

	again := punct.Clean(cleaned)
	for i, tok := range cleaned[0] {
		if tok == "" {
			fs.punctOnlyTokens++
		}
		if again[0][i] != tok || cleanedTokens[i].Text != tok {
			fs.idempotencyFails++
			logger.Warn("clean not idempotent", "path", fs.path, "token", tok, "again", again[0][i])
		}
	}
}

func mergeFileState(fs *fileState, stats *Stats) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.totalBytes += fs.totalBytes
	stats.sentences += fs.sentences
	stats.emptySentences += fs.emptySentences
	stats.tokens += fs.tokens
	stats.punctOnlyTokens += fs.punctOnlyTokens
	stats.offsetFailures += fs.offsetFailures
	stats.idempotencyFails += fs.idempotencyFails
	stats.shapeFailures += fs.shapeFailures

	ratio := 0.0
	if fs.sentences > 0 {
		ratio = float64(fs.tokens) / float64(fs.sentences)
	}
	stats.fileRatios = append(stats.fileRatios, fileRatio{
		path:      fs.path,
		sentences: fs.sentences,
		tokens:    fs.tokens,
		ratio:     ratio,
	})
}

// flagLengthOutliers computes the median tokens-per-sentence ratio across all
// files and flags any file whose ratio exceeds outlierFactor times the median.
// Such files usually hold paragraphs rather than one sentence per line.
func flagLengthOutliers(logger *slog.Logger, stats *Stats) {
	if len(stats.fileRatios) == 0 {
		return
	}

	ratios := make([]float64, len(stats.fileRatios))
	for i, fr := range stats.fileRatios {
		ratios[i] = fr.ratio
	}
	med := computeMedian(ratios)

	for _, fr := range stats.fileRatios {
		if med > 0 && fr.ratio > outlierFactor*med {
			stats.lengthOutliers++
			logger.Warn("sentence length outlier",
				"path", fr.path,
				"tokens", fr.tokens,
				"sentences", fr.sentences,
				"ratio", fmt.Sprintf("%.2f", fr.ratio),
				"median", fmt.Sprintf("%.2f", med),
			)
		}
	}
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2 //nolint:mnd // arithmetic mean of two middle values
	}
	return sorted[mid]
}

func truncate(s string) string {
	const maxRunes = 80
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "..."
}

func printStats(stats *Stats) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Check", "Count"})
	tw.AppendRows([]table.Row{
		{"Files scanned", stats.filesScanned},
		{"Total bytes", stats.totalBytes},
		{"Sentences", stats.sentences},
		{"Empty sentences", stats.emptySentences},
		{"Tokens", stats.tokens},
		{"Punctuation-only tokens", stats.punctOnlyTokens},
		{"Offset failures", stats.offsetFailures},
		{"Idempotency failures", stats.idempotencyFails},
		{"Shape failures", stats.shapeFailures},
		{"Length outliers", stats.lengthOutliers},
	})
	fmt.Println(tw.Render())

	if stats.tokens > 0 {
		share := float64(stats.punctOnlyTokens) / float64(stats.tokens) * 100
		fmt.Println("Punctuation-only share: " + strconv.FormatFloat(share, 'f', 1, 64) + "%")
	}
}
