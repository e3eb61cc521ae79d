package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the notification markup as HTML",
	Long: `Create one notification of each kind, plus one with two actions, in an
offscreen document and print its body as HTML. Useful when writing themes.

--advance moves the simulated clock forward, so the output shows which
notifications are exiting or already removed at that moment.`,
	RunE: runSnapshot,
}

var snapshotOpts struct {
	advance time.Duration
}

func init() {
	snapshotCmd.Flags().DurationVar(&snapshotOpts.advance, "advance", 0,
		"Advance the simulated clock before printing")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	doc := snapshotDocument(cfg.NotifyConfig(), snapshotOpts.advance)
	return dom.RenderHTML(cmd.OutOrStdout(), doc.Body())
}

// snapshotDocument mounts one sample of each kind on a manual clock and
// advances it by d.
func snapshotDocument(cfg notify.Config, d time.Duration) *dom.Document {
	manual := clock.NewManual()
	n := notify.New(nil, manual, cfg, logger)

	n.Info("A new version is available")
	n.Success("Settings saved")
	n.Warning("Disk is 90% full")
	n.Error("Connection lost")
	n.Confirmation("Delete 12 items?",
		notify.Action{Label: "Delete"},
		notify.Action{Label: "Cancel"})
	n.Info("Update downloaded",
		notify.Action{Label: "Restart"},
		notify.Action{Label: "Later"})

	if d > 0 {
		manual.Advance(d)
	}
	return n.Document()
}
