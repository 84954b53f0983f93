package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/pages"
)

func addPages(topLevel *cobra.Command) {
	po := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "list the tracker pages and the stages that show them",
		Example: `
tend pages
tend pages --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := openSession(app.Options{}, false)
			if err != nil {
				return po.HandleError(err)
			}
			defer o.Close()

			p := pages.Pages{Session: o.session, JSON: po.JSON}
			return po.HandleError(p.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, po)
	topLevel.AddCommand(cmd)
}
