package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lexibot/internal/config"
	"github.com/roach88/lexibot/internal/lexfile"
)

// NewCheckCommand validates the dictionary file without starting the bot.
// It reports every quarantined record and exits nonzero if any exist.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the dictionary file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}

func runCheck(cmd *cobra.Command, opts *RootOptions) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			formatter.Error(ErrCodeConfig, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeConfig, "loading config", err)
		}
		cfg = loaded
	}

	result, err := lexfile.Load(cfg.DictionaryPath)
	if err != nil {
		formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeLoadFailed, "loading dictionary", err)
	}

	if len(result.Quarantined) > 0 {
		details := make([]string, len(result.Quarantined))
		for i, q := range result.Quarantined {
			details[i] = fmt.Sprintf("record %d: %v", q.Index, q.Err)
		}
		formatter.Error(ErrCodeQuarantined,
			fmt.Sprintf("%d of %d records invalid",
				len(result.Quarantined), len(result.Entries)+len(result.Quarantined)),
			details)
		return NewExitError(ExitFailure, "dictionary has invalid records")
	}

	formatter.Reply("ok", fmt.Sprintf("%d entries, all valid", len(result.Entries)))
	return nil
}
