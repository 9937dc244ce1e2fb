package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/simreveal/internal/fixture"
	"github.com/okian/simreveal/pkg/logger"
)

func newPushCmd(root *rootOptions) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Publish the fixture to a running reveal service",
		Long: `push sends the fixture's teams, standings and games to the service and
publishes its clock last.`,
		Example: `  revealctl push -f nfl_week2.yaml --url http://localhost:9080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fixture.Load(root.file)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := fixture.NewClient(url, timeout, logger.Get().Named("push"))
			if err := client.Push(ctx, f); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pushed %s fixture to %s\n", f.League, url)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:9080", "Base URL of the service")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "Overall push timeout")
	return cmd
}
