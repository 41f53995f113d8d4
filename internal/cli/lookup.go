package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/lexibot/internal/bot"
)

// NewLookupCommand answers a single lookup from the command line, exactly
// as the bot would in chat.
func NewLookupCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lookup <name>",
		Aliases: []string{"whatis"},
		Short:   "Show an entry's definition and author",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, opts, bot.Request{
				Command: "lookup",
				Args:    args,
				Author:  currentUser(),
			})
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}

// runOneShot wires the app, dispatches a single request, waits for any
// persistence write the handler triggered, and prints the reply.
func runOneShot(cmd *cobra.Command, opts *RootOptions, req bot.Request) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	app, err := OpenApp(opts)
	if err != nil {
		formatter.Error(GetErrCode(err), err.Error(), nil)
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	stopFlusher := app.StartFlusher(ctx)
	defer stopFlusher()

	resp := app.Registry.Dispatch(ctx, req)

	if resp.Flush != nil {
		if err := resp.Flush.Wait(ctx); err != nil {
			formatter.Error(ErrCodeWriteFailed, "saving dictionary: "+err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed, "saving dictionary", err)
		}
	}

	formatter.Reply(string(resp.Status), resp.Message)
	return exitErrorFor(resp.Status)
}

// exitErrorFor maps a bot status to the command's exit outcome. OK and
// help replies exit zero; the rest are failures the shell should see.
func exitErrorFor(status bot.Status) error {
	switch status {
	case bot.StatusOK, bot.StatusHelp:
		return nil
	case bot.StatusError:
		return NewExitError(ExitCommandError, string(status))
	default:
		return NewExitError(ExitFailure, string(status))
	}
}
