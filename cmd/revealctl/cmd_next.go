package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/okian/simreveal/internal/domain/reveal"
	"github.com/okian/simreveal/internal/fixture"
	"github.com/okian/simreveal/pkg/logger"
)

func newNextCmd(root *rootOptions) *cobra.Command {
	var team uint
	cmd := &cobra.Command{
		Use:     "next",
		Short:   "Show a team's schedule with the next matchup marked",
		Example: `  revealctl next -f nba_week2.yaml --team 12`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if team == 0 {
				return errors.New("--team must be a positive team id")
			}
			f, err := fixture.Load(root.file)
			if err != nil {
				return err
			}
			engine := reveal.New(reveal.WithLogger(logger.Get().Named("reveal")))
			entries, next := fixture.Next(engine, f, team)
			return fixture.WriteNext(cmd.OutOrStdout(), entries, next)
		},
	}
	cmd.Flags().UintVar(&team, "team", 0, "Team id")
	return cmd
}
