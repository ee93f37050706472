package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/glmack/multilingual-machines/bleu"
)

func newRefsCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "refs FIRST SECOND",
		Short: "Repeat a concatenated reference pair once per candidate",
		Long: `Tokenize two reference sentences, concatenate their tokens and print
--count independent copies, the shape a corpus scorer expects when every
candidate shares the same references.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return errors.New("--count must not be negative")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			tokens := prepare(args, cleanSetting(cmd, cfg))
			refs := bleu.References(tokens[0], tokens[1], count)
			logger.Debug("expanded references", "count", count, "tokens", len(tokens[0])+len(tokens[1]))

			if !useTable(cmd, cfg) {
				return writeJSON(cmd, refs)
			}
			rows := make([][]string, len(refs))
			for i, ref := range refs {
				rows[i] = []string{strconv.Itoa(i + 1), formatTokens(ref)}
			}
			return writeTable(cmd, []string{"#", "Reference"}, rows,
				[]columnAlignment{alignRight, alignLeft})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of candidates to build references for")
	addCleanFlags(cmd)
	return cmd
}
