package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glmack/multilingual-machines/bleu"
)

// runCommand executes mmprep with args and stdin, returning stdout and stderr.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTokenizeStdinJSON(t *testing.T) {
	out, _, err := runCommand(t, "\"Hello,\" she said.\n   \nit's done...\n", "tokenize")
	require.NoError(t, err)

	var got [][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, [][]string{
		{"Hello", "she", "said"},
		{},
		{"it's", "done"},
	}, got)
}

func TestTokenizeNoClean(t *testing.T) {
	out, _, err := runCommand(t, "hello, world!\n", "tokenize", "--no-clean")
	require.NoError(t, err)

	var got [][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, [][]string{{"hello,", "world!"}}, got)
}

func TestTokenizeFileCRLF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "in.txt", "a b\r\nc\r\n")
	out, _, err := runCommand(t, "", "tokenize", path)
	require.NoError(t, err)

	var got [][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, got)
}

func TestTokenizeConfigDisablesClean(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "mmprep.toml", "[tokenize]\nclean = false\n")

	out, _, err := runCommand(t, "x.\n", "--config", cfgPath, "tokenize")
	require.NoError(t, err)
	assert.Contains(t, out, `"x."`)

	out, _, err = runCommand(t, "x.\n", "--config", cfgPath, "tokenize", "--clean")
	require.NoError(t, err)
	assert.NotContains(t, out, `"x."`)
}

func TestTokenizeCleanFlagsExclusive(t *testing.T) {
	_, _, err := runCommand(t, "", "tokenize", "--clean", "--no-clean")
	require.Error(t, err)
}

func TestTokenizeTable(t *testing.T) {
	out, _, err := runCommand(t, "the quick fox\n", "--format", "table", "tokenize")
	require.NoError(t, err)
	assert.Contains(t, out, `"the" "quick" "fox"`)
	assert.Contains(t, out, "Tokens")
}

func TestRefs(t *testing.T) {
	out, _, err := runCommand(t, "", "refs", "a b", "c.", "--count", "3")
	require.NoError(t, err)

	var got [][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"a", "b", "c"}, {"a", "b", "c"}}, got)
}

func TestRefsZeroCount(t *testing.T) {
	out, _, err := runCommand(t, "", "refs", "a", "b", "-n", "0")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestRefsNegativeCount(t *testing.T) {
	_, _, err := runCommand(t, "", "refs", "a", "b", "--count=-1")
	require.Error(t, err)
}

func TestBLEUAligned(t *testing.T) {
	dir := t.TempDir()
	cands := writeFile(t, dir, "cands.txt", "the cat is on the mat.\nthere is a cat on the mat\n")
	ref1 := writeFile(t, dir, "ref1.txt", "The cat is on the mat\nthere is a dog here\n")
	ref2 := writeFile(t, dir, "ref2.txt", "a cat\nthere is a cat on the mat!\n")

	out, stderr, err := runCommand(t, "", "bleu", "--candidates", cands, "--ref", ref1, "--ref", ref2)
	require.NoError(t, err)

	var score bleu.Score
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	// "the" vs "The" differs, so the first candidate is not a perfect match.
	assert.Greater(t, score.BLEU, 0.0)
	assert.Less(t, score.BLEU, 1.0)
	assert.Len(t, score.Precisions, bleu.DefaultMaxOrder)
	assert.Equal(t, 13, score.CandidateLength)
	assert.Contains(t, stderr, "scored corpus")
}

func TestBLEUPerfectMatch(t *testing.T) {
	dir := t.TempDir()
	cands := writeFile(t, dir, "cands.txt", "the cat is on the mat\n")
	ref := writeFile(t, dir, "ref.txt", "the cat is on the mat.\n")

	out, _, err := runCommand(t, "", "--log-level", "error", "bleu", "--candidates", cands, "--ref", ref)
	require.NoError(t, err)

	var score bleu.Score
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.InDelta(t, 1.0, score.BLEU, 1e-9)
}

func TestBLEUBroadcast(t *testing.T) {
	dir := t.TempDir()
	cands := writeFile(t, dir, "cands.txt", "the cat is on the mat\nthere is a cat on the mat\n")
	ref1 := writeFile(t, dir, "ref1.txt", "the cat is on the mat\n")
	ref2 := writeFile(t, dir, "ref2.txt", "there is a cat on the mat\n")

	out, _, err := runCommand(t, "", "bleu", "--broadcast", "--candidates", cands, "--ref", ref1, "--ref", ref2)
	require.NoError(t, err)

	var score bleu.Score
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.InDelta(t, 1.0, score.BLEU, 1e-9)
}

func TestBLEUErrors(t *testing.T) {
	dir := t.TempDir()
	cands := writeFile(t, dir, "cands.txt", "a b c d\ne f g h\n")
	short := writeFile(t, dir, "short.txt", "a b c d\n")

	_, _, err := runCommand(t, "", "bleu", "--candidates", cands, "--ref", short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 1 lines")

	_, _, err = runCommand(t, "", "bleu", "--broadcast", "--candidates", cands, "--ref", cands)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--broadcast needs exactly 1")

	_, _, err = runCommand(t, "", "bleu", "--candidates", cands, "--ref", filepath.Join(dir, "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")

	_, _, err = runCommand(t, "", "bleu", "--candidates", cands)
	require.Error(t, err)
}

func TestBLEUTable(t *testing.T) {
	dir := t.TempDir()
	cands := writeFile(t, dir, "cands.txt", "the cat is on the mat\n")

	out, _, err := runCommand(t, "", "--format", "table", "bleu", "--candidates", cands, "--ref", cands)
	require.NoError(t, err)
	assert.Contains(t, out, "Brevity penalty")
	assert.Contains(t, out, "1.0000")
}

func TestConfigSampleSkipsBrokenConfig(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "bad.toml", "[output]\nformat = \"xml\"\n")

	out, _, err := runCommand(t, "", "--config", cfgPath, "config", "sample")
	require.NoError(t, err)
	assert.Contains(t, out, "[tokenize]")

	_, _, err = runCommand(t, "", "--config", cfgPath, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestInvalidFormatFlag(t *testing.T) {
	_, _, err := runCommand(t, "a\n", "--format", "yaml", "tokenize")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
}
