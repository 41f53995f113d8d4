package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lexibot/internal/bot"
)

// NewServeCommand runs the bot as a line-oriented REPL: each input line
// is one chat message, each output line one reply. This is the surface a
// chat connector script drives over a pipe.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var (
		author  string
		channel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Read commands line by line and reply",
		Long: "Reads one command per line from stdin and writes one reply per line.\n" +
			"Pending restart announcements are delivered on startup. Dictionary\n" +
			"writes happen in the background and are drained before exit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if author == "" {
				author = currentUser()
			}
			return runServe(cmd, opts, author, channel)
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "author attributed to every line (defaults to $USER)")
	cmd.Flags().StringVar(&channel, "channel", "#console", "channel attributed to every line")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}

func runServe(cmd *cobra.Command, opts *RootOptions, author, channel string) error {
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

	// Channels that asked to hear about the restart get told now.
	waiting, err := app.Handlers.Notifier.Drain()
	if err != nil {
		app.Logger.Warn("draining restart notifications failed", "error", err)
	}
	for _, ch := range waiting {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] I'm back up.\n", ch)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		resp := app.Registry.Dispatch(ctx, bot.Request{
			Command: fields[0],
			Args:    fields[1:],
			Author:  author,
			Channel: channel,
		})
		// Writes complete in the background; the drain on exit makes the
		// last snapshot durable.
		formatter.Reply(string(resp.Status), resp.Message)
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, ErrCodeGeneric, "reading input", err)
	}
	return nil
}
