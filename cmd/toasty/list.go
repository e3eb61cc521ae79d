package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/adapter/output"
	"github.com/jmylchreest/toasty/internal/core"
	"github.com/jmylchreest/toasty/internal/dbus"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notifications on screen",
	Long: `List the notifications toastyd is showing, oldest first.

Output formats:
  plain  Numbered list with kind, message, age and id (default)
  dmenu  One line per notification, for dmenu/fuzzel/walker pickers
  json   JSON array
  yaml   YAML sequence
  ids    One id per line

Template (dmenu format):
  --template '{{.Index}}: {{.Entry.Kind}} {{truncate .Entry.Message 40}}'

Template functions: truncate, upper, kindIcon.

Filter expressions (comma-separated, all must match):
  kind=error               Error notifications
  message~disk             Message contains "disk"
  state!=exiting           Not already leaving
  age>1m                   On screen for more than a minute

Examples:
  toasty list --filter kind=confirm --format ids
  toasty list --sort kind --order desc --limit 3`,
	RunE: runList,
}

var listOpts struct {
	format     string
	template   string
	showState  bool
	noTime     bool
	messageMax int
	filter     string
	search     string
	sort       string
	order      string
	limit      int
}

func init() {
	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain",
		"Output format (plain, dmenu, json, yaml, ids)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Go template for each line (dmenu format)")
	listCmd.Flags().BoolVar(&listOpts.showState, "state", false,
		"Show the lifecycle state of each notification")
	listCmd.Flags().BoolVar(&listOpts.noTime, "no-time", false,
		"Hide the relative age")
	listCmd.Flags().IntVar(&listOpts.messageMax, "message-max", 0,
		"Truncate messages to this many characters (0 keeps them whole)")
	listCmd.Flags().StringVar(&listOpts.filter, "filter", "",
		"Filter expression (e.g. \"kind=error,age>30s\")")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Only messages containing this text")
	listCmd.Flags().StringVar(&listOpts.sort, "sort", "created",
		"Sort by created, kind or state")
	listCmd.Flags().StringVar(&listOpts.order, "order", "asc",
		"Sort order (asc, desc)")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of notifications (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOpts.format)
	if err != nil {
		return err
	}
	if listOpts.template != "" {
		format = output.FormatDmenu
	}

	expr, err := core.ParseFilter(listOpts.filter)
	if err != nil {
		return fmt.Errorf("failed to parse filter: %w", err)
	}
	field, err := core.ParseSortField(listOpts.sort)
	if err != nil {
		return err
	}
	order, err := core.ParseSortOrder(listOpts.order)
	if err != nil {
		return err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	opts.ShowState = listOpts.showState
	opts.ShowTime = !listOpts.noTime
	opts.MessageMax = listOpts.messageMax

	return withClient(cmd.Context(), func(ctx context.Context, c *dbus.Client) error {
		entries, err := c.List(ctx)
		if err != nil {
			return err
		}
		logger.Debug("listed notifications", "count", len(entries))

		entries = core.Search(entries, listOpts.search)
		core.Sort(entries, core.SortOptions{Field: field, Order: order})
		entries = core.Filter(entries, expr, listOpts.limit)

		if err := output.NewFormatter(format, opts).Format(cmd.OutOrStdout(), entries); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return nil
	})
}
