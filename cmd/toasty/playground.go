package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/tui"
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Try notifications in the terminal",
	Long: `Launch an interactive terminal playground. Notifications are drawn in
the bottom right corner and behave like the desktop ones: they dismiss
themselves, pause while the mouse is over them and stack upwards.

No daemon is needed.

Key bindings:
  i/s/w/e     Show an info, success, warning or error notification
  c           Show a confirmation with Yes/No buttons
  a           Show a notification with two action buttons
  b           Try a kind that does not exist
  x           Dismiss all
  ?           Show help
  q           Quit

Click a button with the mouse to invoke it.`,
	Aliases: []string{"tui"},
	RunE:    runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal; keep log lines off it.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if globalOpts.verbose {
		quiet = logger
	}
	return tui.Run(cfg, quiet)
}
