package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/lexibot/internal/bot"
)

// NewSearchCommand lists entries whose definition mentions the text.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find entries whose definition mentions text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, opts, bot.Request{
				Command: "search",
				Args:    args,
				Author:  currentUser(),
			})
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
