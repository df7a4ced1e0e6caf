package cmd

import (
	"github.com/screenguide/screenguide/internal/evaluation"
	"github.com/screenguide/screenguide/internal/output"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var datasetPath string
	var format string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Replay recorded model replies through the parser and score the contract",
		Long: `Loads a yaml dataset of recorded analysis replies and replays each one
through the structured-response parser, scoring the extracted name, location
and action list against the expected values.

Run this after changing the prompts or the parser: a dropping score means the
text contract between them has drifted.`,
		Example: `  screenguide eval --dataset testdata/analysis_replies.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := evaluation.LoadDataset(datasetPath)
			if err != nil {
				return err
			}

			report := evaluation.Run(ds)
			return output.Print(output.Format(format), report)
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Path to the yaml dataset of recorded replies")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
