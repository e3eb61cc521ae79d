package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/notify"
)

var sendCmd = &cobra.Command{
	Use:   "send <kind> <message>",
	Short: "Show a notification",
	Long: `Show a notification through toastyd.

Kinds are info, success, warning, error and confirmation (or confirm).
A notification carries at most two --action buttons. Clicking any button
dismisses the notification.

The new notification's id is printed on stdout. With --wait, toasty blocks
until the notification is gone and prints how it left: the clicked action
label, or the removal reason ("expired" or "dismissed").

Examples:
  toasty send info "Backup finished"
  toasty send confirm "Restart now?" --action Yes --action No --wait`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(cmd, args[0], strings.Join(args[1:], " "))
	},
}

var sendOpts struct {
	actions     []string
	wait        bool
	waitTimeout time.Duration
}

// kindCommand builds a shortcut such as 'toasty info <message>'.
func kindCommand(kind notify.Kind, use string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <message>",
		Short: fmt.Sprintf("Show a %s notification", kind),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, string(kind), strings.Join(args, " "))
		},
	}
}

func init() {
	shortcuts := []*cobra.Command{
		kindCommand(notify.KindInfo, "info"),
		kindCommand(notify.KindSuccess, "success"),
		kindCommand(notify.KindWarning, "warning"),
		kindCommand(notify.KindError, "error"),
		kindCommand(notify.KindConfirmation, "confirm"),
	}

	for _, c := range append([]*cobra.Command{sendCmd}, shortcuts...) {
		c.Flags().StringArrayVarP(&sendOpts.actions, "action", "a", nil,
			"Add an action button (repeatable, at most 2)")
		c.Flags().BoolVarP(&sendOpts.wait, "wait", "w", false,
			"Wait until the notification is removed and print the outcome")
		c.Flags().DurationVar(&sendOpts.waitTimeout, "wait-timeout", 0,
			"Give up waiting after this long (0 waits forever)")
		rootCmd.AddCommand(c)
	}
}

func runSend(cmd *cobra.Command, rawKind, message string) error {
	// Reject bad input before touching the bus.
	kind, err := notify.ParseKind(rawKind)
	if err != nil {
		return err
	}
	if limit := cfg.NotifyConfig().MaxActions; len(sendOpts.actions) > limit {
		return &notify.TooManyActionsError{Count: len(sendOpts.actions), Max: limit}
	}

	client, err := dbus.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	// Subscribe first so a fast dismissal cannot be missed.
	var sub *dbus.Subscription
	if sendOpts.wait {
		if sub, err = client.Subscribe(); err != nil {
			return err
		}
		defer func() { _ = sub.Close() }()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), globalOpts.timeout)
	id, err := client.Create(ctx, string(kind), message, sendOpts.actions)
	cancel()
	if err != nil {
		return err
	}
	logger.Debug("notification created", "id", id, "kind", kind)

	if sub == nil {
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	}

	waitCtx := cmd.Context()
	if sendOpts.waitTimeout > 0 {
		var cancelWait context.CancelFunc
		waitCtx, cancelWait = context.WithTimeout(waitCtx, sendOpts.waitTimeout)
		defer cancelWait()
	}
	out, err := sub.Wait(waitCtx, id)
	if err != nil {
		return fmt.Errorf("failed to wait for %s: %w", id, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), outcomeText(out))
	return nil
}

// outcomeText prints the clicked action when there was one, otherwise the
// removal reason.
func outcomeText(out dbus.Outcome) string {
	if out.Action != "" {
		return out.Action
	}
	return out.Reason
}
