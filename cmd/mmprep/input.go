package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glmack/multilingual-machines/internal/config"
	"github.com/glmack/multilingual-machines/punct"
	"github.com/glmack/multilingual-machines/tokenizer"
)

// maxLineBytes bounds a single input sentence.
const maxLineBytes = 1 << 20

// readLines returns the lines of path, or of the command's stdin when path
// is empty or "-". Trailing "\r" is removed so CRLF files split cleanly.
func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader
	name := path
	if path == "" || path == "-" {
		r = cmd.InOrStdin()
		name = "stdin"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return lines, nil
}

// prepare tokenizes texts and, when clean is set, strips edge punctuation.
func prepare(texts []string, clean bool) [][]string {
	tokens := tokenizer.Split(texts)
	if clean {
		tokens = punct.Clean(tokens)
	}
	return tokens
}

// cleanSetting resolves --clean/--no-clean against the config.
func cleanSetting(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("no-clean") {
		if v, _ := cmd.Flags().GetBool("no-clean"); v {
			return false
		}
	}
	if cmd.Flags().Changed("clean") {
		v, _ := cmd.Flags().GetBool("clean")
		return v
	}
	return cfg.Tokenize.Clean
}

func addCleanFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("clean", false, "Strip edge punctuation from tokens (overrides config)")
	cmd.Flags().Bool("no-clean", false, "Keep edge punctuation on tokens (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("clean", "no-clean")
}
