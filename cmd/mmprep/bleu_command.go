package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/glmack/multilingual-machines/bleu"
)

func newBLEUCommand(ctx *commandContext) *cobra.Command {
	var candidatesPath string
	var refPaths []string
	var broadcast bool

	cmd := &cobra.Command{
		Use:   "bleu",
		Short: "Score a candidate file against reference files with corpus BLEU",
		Long: `Score candidates against references, one sentence per line.

By default every --ref file is line-aligned with --candidates: line i of each
reference file is a reference for candidate line i.

With --broadcast every --ref file holds a single reference sentence and all
candidates are scored against the same reference set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			clean := cleanSetting(cmd, cfg)

			candLines, err := readLines(cmd, candidatesPath)
			if err != nil {
				return err
			}
			candidates := prepare(candLines, clean)

			refSets := make([][][]string, len(refPaths))
			for i, path := range refPaths {
				lines, err := readLines(cmd, path)
				if err != nil {
					return err
				}
				refSets[i] = prepare(lines, clean)
			}

			var references [][][]string
			if broadcast {
				references, err = broadcastReferences(refPaths, refSets, len(candidates))
			} else {
				references, err = alignReferences(refPaths, refSets, len(candidates))
			}
			if err != nil {
				return err
			}

			score, err := bleu.CorpusScore(references, candidates, cfg.ScoreOptions()...)
			if err != nil {
				return err
			}
			logger.Info("scored corpus",
				"candidates", len(candidates),
				"references", len(refPaths),
				"bleu", score.BLEU,
			)

			if !useTable(cmd, cfg) {
				return writeJSON(cmd, score)
			}
			return writeTable(cmd, []string{"Metric", "Value"}, scoreRows(score),
				[]columnAlignment{alignLeft, alignRight})
		},
	}

	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "Candidate file, one sentence per line (- for stdin)")
	cmd.Flags().StringArrayVar(&refPaths, "ref", nil, "Reference file (repeatable)")
	cmd.Flags().BoolVar(&broadcast, "broadcast", false, "Score every candidate against the same single-sentence references")
	_ = cmd.MarkFlagRequired("candidates")
	_ = cmd.MarkFlagRequired("ref")
	addCleanFlags(cmd)
	return cmd
}

// alignReferences regroups per-file references into per-candidate sets.
func alignReferences(paths []string, refSets [][][]string, candidates int) ([][][]string, error) {
	for i, set := range refSets {
		if len(set) != candidates {
			return nil, fmt.Errorf("reference file %s has %d lines, candidates have %d", paths[i], len(set), candidates)
		}
	}
	references := make([][][]string, candidates)
	for c := range references {
		refs := make([][]string, len(refSets))
		for i, set := range refSets {
			refs[i] = set[c]
		}
		references[c] = refs
	}
	return references, nil
}

// broadcastReferences repeats the single sentence of every reference file
// once per candidate.
func broadcastReferences(paths []string, refSets [][][]string, candidates int) ([][][]string, error) {
	if len(refSets) == 0 {
		return nil, errors.New("at least one --ref is required")
	}
	sentences := make([][]string, len(refSets))
	for i, set := range refSets {
		if len(set) != 1 {
			return nil, fmt.Errorf("reference file %s has %d lines, --broadcast needs exactly 1", paths[i], len(set))
		}
		sentences[i] = set[0]
	}
	return bleu.References(sentences[:1], sentences[1:], candidates), nil
}

func scoreRows(score bleu.Score) [][]string {
	rows := [][]string{
		{"BLEU", strconv.FormatFloat(score.BLEU, 'f', 4, 64)},
	}
	for n, p := range score.Precisions {
		rows = append(rows, []string{fmt.Sprintf("%d-gram precision", n+1), strconv.FormatFloat(p, 'f', 4, 64)})
	}
	rows = append(rows,
		[]string{"Brevity penalty", strconv.FormatFloat(score.BrevityPenalty, 'f', 4, 64)},
		[]string{"Candidate length", strconv.Itoa(score.CandidateLength)},
		[]string{"Reference length", strconv.Itoa(score.ReferenceLength)},
	)
	return rows
}
