// Command revealctl evaluates reveal fixtures offline and pushes them to a
// running reveal service.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/simreveal/pkg/logger"
)

const defaultTimeout = 30 * time.Second

type rootOptions struct {
	file    string
	verbose bool
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "revealctl",
		Short: "Inspect and publish result reveal fixtures",
		Long: `revealctl loads a league fixture (clock, games, teams, standings) from YAML
and either runs the reveal rules over it locally or pushes it to a running
reveal service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if opts.verbose {
				return logger.SetLevelString("debug")
			}
			return logger.SetLevelString("warn")
		},
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Fixture YAML file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(newEvaluateCmd(opts), newNextCmd(opts), newPushCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
