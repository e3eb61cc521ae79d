package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/core"
	"github.com/jmylchreest/toasty/internal/dbus"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss [ref...]",
	Short: "Dismiss notifications",
	Long: `Dismiss notifications, or every notification with --all.

A reference is a full id, the index shown by 'toasty list', or the last
four or more characters of an id. Dismissed notifications play their exit
transition before leaving the screen. References that match nothing on
screen are reported but do not stop the others.

Examples:
  toasty dismiss 01J9ZQ3V7K8T2X4M5N6P7R8S9T
  toasty dismiss 1 R8S9T
  toasty list --filter kind=error --format ids | xargs toasty dismiss
  toasty dismiss --all`,
	RunE: runDismiss,
}

var dismissOpts struct {
	all bool
}

func init() {
	dismissCmd.Flags().BoolVar(&dismissOpts.all, "all", false, "Dismiss every notification")
	rootCmd.AddCommand(dismissCmd)
}

func runDismiss(cmd *cobra.Command, args []string) error {
	if dismissOpts.all == (len(args) > 0) {
		return errors.New("pass notification references or --all")
	}

	return withClient(cmd.Context(), func(ctx context.Context, c *dbus.Client) error {
		if dismissOpts.all {
			return c.DismissAll(ctx)
		}

		// Indexes and suffixes refer to the list as it is now.
		entries, err := c.List(ctx)
		if err != nil {
			return err
		}

		var missing int
		for _, ref := range args {
			entry, err := core.Resolve(entries, ref)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", ref, err)
				missing++
				continue
			}
			err = c.Dismiss(ctx, entry.ID)
			switch {
			case errors.Is(err, dbus.ErrNotFound):
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: already gone\n", ref)
				missing++
			case err != nil:
				return err
			}
			logger.Debug("dismissed notification", "id", entry.ID, "ref", ref)
		}
		if missing == len(args) {
			return fmt.Errorf("none of the %d notifications were on screen", missing)
		}
		return nil
	})
}
