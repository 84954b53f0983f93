package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete <page> <id>",
		Short: "delete an entry, or a medicine day by its date",
		Example: `
tend history mood-tracker --show-id
tend delete mood-tracker 0f8fad5b-d9cb-469f-a165-70867728950e
tend delete medicine-tracker 2024-03-12
`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return pageCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := openSession(app.Options{}, false)
			if err != nil {
				return err
			}
			defer o.Close()

			r := remove.Remove{Session: o.session, Page: page.ID(args[0]), ID: args[1]}
			return r.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
