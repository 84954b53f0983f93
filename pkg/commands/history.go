package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	wo := &options.WeekOptions{}
	po := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "history [page]",
		Short: "show a week of records",
		Example: `
tend history
tend history mood-tracker --week -1
tend history medicine-tracker --json
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return pageCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := openSession(app.Options{}, false)
			if err != nil {
				return po.HandleError(err)
			}
			defer o.Close()

			h := history.History{
				Session: o.session,
				Week:    wo.Week,
				ShowID:  io.ShowID,
				JSON:    po.JSON,
			}
			if len(args) == 1 {
				h.Page = page.ID(args[0])
			}
			return po.HandleError(h.Do(context.Background()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddWeekArgs(cmd, wo)
	options.AddOutputArg(cmd, po)
	topLevel.AddCommand(cmd)
}
