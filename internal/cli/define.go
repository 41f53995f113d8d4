package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/lexibot/internal/bot"
)

// NewDefineCommand adds an entry to the dictionary and waits for the
// write to land before exiting.
func NewDefineCommand(opts *RootOptions) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:     "define <name> <definition...>",
		Aliases: []string{"add"},
		Short:   "Add a new dictionary entry",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if author == "" {
				author = currentUser()
			}
			return runOneShot(cmd, opts, bot.Request{
				Command: "define",
				Args:    args,
				Author:  author,
			})
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "attribute the entry to this name (defaults to $USER)")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
