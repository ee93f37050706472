package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenizeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Split sentences into whitespace tokens, one sentence per line",
		Long: `Split every input line on whitespace and, unless disabled, strip ASCII
punctuation from both edges of each token. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			lines, err := readLines(cmd, path)
			if err != nil {
				return err
			}

			clean := cleanSetting(cmd, cfg)
			tokens := prepare(lines, clean)
			logger.Debug("tokenized corpus", "sentences", len(tokens), "clean", clean)

			if !useTable(cmd, cfg) {
				return writeJSON(cmd, tokens)
			}
			rows := make([][]string, len(tokens))
			for i, sentence := range tokens {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(len(sentence)),
					formatTokens(sentence),
				}
			}
			return writeTable(cmd, []string{"#", "Count", "Tokens"}, rows,
				[]columnAlignment{alignRight, alignRight, alignLeft})
		},
	}
	addCleanFlags(cmd)
	return cmd
}

// formatTokens renders tokens as a quoted, space-separated list so empty
// tokens stay visible.
func formatTokens(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, " ")
}
