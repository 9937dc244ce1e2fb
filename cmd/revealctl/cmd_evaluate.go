package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/simreveal/internal/domain/reveal"
	"github.com/okian/simreveal/internal/fixture"
	"github.com/okian/simreveal/pkg/logger"
)

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	var override bool
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Print the reveal decision for every game in the fixture",
		Example: `  revealctl evaluate -f nfl_week2.yaml
  revealctl evaluate -f nfl_week2.yaml --override`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fixture.Load(root.file)
			if err != nil {
				return err
			}
			engine := reveal.New(reveal.WithLogger(logger.Get().Named("reveal")))
			return fixture.WriteResults(cmd.OutOrStdout(), fixture.Evaluate(engine, f, override))
		},
	}
	cmd.Flags().BoolVar(&override, "override", false, "Reveal everything regardless of the clock")
	return cmd
}
